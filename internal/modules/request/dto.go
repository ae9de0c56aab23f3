package request

type CreateRequestRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Category    string  `json:"category" binding:"required"`
	Location    string  `json:"location"`
	Budget      float64 `json:"budget"`
	Urgency     string  `json:"urgency"`
}

type CancelRequestRequest struct {
	Reason string `json:"reason" binding:"required"`
}
