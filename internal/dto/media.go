package dto

type CreateMediaRequest struct {
	Type     string     `json:"type" binding:"required,oneof=IMAGE VIDEO"`
	Caption  *string    `json:"caption"`
	Link     string     `json:"link" binding:"required,url"`
	Location [2]float64 `json:"location"` // [latitude, longitude]
}

type AddCommentRequest struct {
	Body string `json:"body" binding:"required,max=2000"`
}
