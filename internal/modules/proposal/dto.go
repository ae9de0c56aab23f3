package proposal

type CreateProposalRequest struct {
	ServiceRequestID  int64   `json:"service_request_id" binding:"required"`
	Price             float64 `json:"price" binding:"required,gt=0"`
	Message           string  `json:"message"`
	EstimatedDuration string  `json:"estimated_duration"`
}
