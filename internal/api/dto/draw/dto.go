package draw

type DrawAcceptedResponse struct {
	Outcome string `json:"outcome"` // accepted
	Cycle   uint64 `json:"cycle"`   // Номер цикла
}

type DrawRejectedResponse struct {
	Outcome   string `json:"outcome"`   // busy | exhausted
	Cycle     uint64 `json:"cycle"`     // Цикл, который сейчас идёт (для busy)
	Remaining int    `json:"remaining"` // Остаток номеров
}

type DrawResultResponse struct {
	Cycle     uint64 `json:"cycle"`
	Number    int    `json:"number"`    // 1-75
	Column    string `json:"column"`    // B/I/N/G/O
	Label     string `json:"label"`     // "B - 12"
	Remaining int    `json:"remaining"` // Остаток номеров
}

type StateResponse struct {
	Phase     string              `json:"phase"`
	Remaining int                 `json:"remaining"`
	Drawn     int                 `json:"drawn"`
	Last      *DrawResultResponse `json:"last,omitempty"`
}

type HistoryResponse struct {
	Numbers []int    `json:"numbers"` // Разыгранные номера
	Labels  []string `json:"labels"`  // Подписи в том же порядке
}

type ColumnResponse struct {
	Number int    `json:"number"`
	Column string `json:"column"`
}

// EventMessage Событие для websocket и табло
type EventMessage struct {
	Type      string `json:"type"`
	Cycle     uint64 `json:"cycle,omitempty"`
	Number    int    `json:"number,omitempty"`
	Column    string `json:"column,omitempty"`
	Label     string `json:"label,omitempty"`
	Remaining *int   `json:"remaining,omitempty"`
	At        int64  `json:"at"` // Unix ms
}

// SnapshotMessage Первое сообщение после подключения
type SnapshotMessage struct {
	Type    string          `json:"type"` // snapshot
	State   StateResponse   `json:"state"`
	History HistoryResponse `json:"history"`
}
