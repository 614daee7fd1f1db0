package converter

import (
	dto "bingo_caller/internal/api/dto/draw"
	"bingo_caller/internal/model"
)

func ToDrawResultResponse(res model.DrawResult) dto.DrawResultResponse {
	return dto.DrawResultResponse{
		Cycle:     res.Cycle,
		Number:    res.Number,
		Column:    string(res.Column),
		Label:     res.Label(),
		Remaining: res.Remaining,
	}
}

func ToStateResponse(s model.Snapshot) dto.StateResponse {
	out := dto.StateResponse{
		Phase:     s.Phase.String(),
		Remaining: s.Remaining,
		Drawn:     len(s.History),
	}
	if s.Last != nil {
		last := ToDrawResultResponse(*s.Last)
		out.Last = &last
	}
	return out
}

// ToHistoryResponse columnOf уже проверен при розыгрыше, ошибки быть не может
func ToHistoryResponse(numbers []int, columnOf func(int) (model.Column, error), newestFirst bool) dto.HistoryResponse {
	out := dto.HistoryResponse{
		Numbers: make([]int, 0, len(numbers)),
		Labels:  make([]string, 0, len(numbers)),
	}
	for i := range numbers {
		n := numbers[i]
		if newestFirst {
			n = numbers[len(numbers)-1-i]
		}
		c, _ := columnOf(n)
		out.Numbers = append(out.Numbers, n)
		out.Labels = append(out.Labels, model.FormatLabel(c, n))
	}
	return out
}

func ToEventMessage(ev model.Event) dto.EventMessage {
	msg := dto.EventMessage{
		Type:  ev.Kind.String(),
		Cycle: ev.Cycle,
		At:    ev.At.UnixMilli(),
	}
	switch ev.Kind {
	case model.CandidateShown:
		msg.Number = ev.Number
	case model.DrawCompleted:
		remaining := ev.Remaining
		msg.Number = ev.Number
		msg.Column = string(ev.Column)
		msg.Label = model.FormatLabel(ev.Column, ev.Number)
		msg.Remaining = &remaining
	case model.AllNumbersDrawn:
		remaining := 0
		msg.Remaining = &remaining
	}
	return msg
}
