package auctions

type PlaceBidRequest struct {
	SessionID string  `json:"session_id" binding:"required"`
	FullName  string  `json:"full_name" binding:"required"`
	Phone     string  `json:"phone" binding:"required"`
	Amount    float64 `json:"amount" binding:"required,gt=0"`
}

type ListBidsQuery struct {
	SessionID string `form:"session"`
}
