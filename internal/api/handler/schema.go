package handler

// errorResponse is the error envelope every route renders.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type registerRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	SignUpCode string `json:"signUpCode"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	UID      string `json:"uid"`
	Email    string `json:"email"`
	Disabled bool   `json:"disabled"`
}

type loginResponse struct {
	Message string       `json:"message"`
	User    userResponse `json:"user"`
	Token   string       `json:"token,omitempty"`
}

type roleResponse struct {
	Role string `json:"role"`
}

type updateCatRequest struct {
	Breed       *string `json:"breed"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
}

type createCatResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

type chatLineRequest struct {
	UserID    string `json:"userId"    validate:"required"`
	Text      string `json:"text"      validate:"required"`
	Timestamp int64  `json:"timestamp"`
}

type postMessageRequest struct {
	CatID   string          `json:"catId"   validate:"required"`
	Message chatLineRequest `json:"message"`
}

type tweetRequest struct {
	Text  string `json:"text"`
	Tweet string `json:"tweet"`
}

type tweetResponse struct {
	Message string `json:"message"`
	TweetID string `json:"tweetId"`
}
