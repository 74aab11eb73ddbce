package transport

// ApiResponse is the envelope every endpoint returns. Soft failures
// (favorites, get-book-by-id) come back as 200 with Success=false.
type ApiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func Success(message string, data any) ApiResponse {
	return ApiResponse{Success: true, Message: message, Data: data}
}

func Error(message string) ApiResponse {
	return ApiResponse{Success: false, Message: message, Data: nil}
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token        string   `json:"token"`
	RefreshToken string   `json:"refreshToken"`
	TokenType    string   `json:"tokenType"`
	ID           uint     `json:"id"`
	Username     string   `json:"username"`
	Email        string   `json:"email"`
	Roles        []string `json:"roles"`
	CreatedAt    string   `json:"createdAt"`
}

type UserDto struct {
	UserID    uint   `json:"userId"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"isAdmin"`
	CreatedAt string `json:"createdAt"`
}

type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	IsAdmin  *bool  `json:"isAdmin"`
}

type UpdateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	IsAdmin  *bool  `json:"isAdmin"`
}

type BookDto struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Category    string `json:"category"`
	Description string `json:"description"`
	CoverURL    string `json:"coverUrl"`
	ISBN        string `json:"isbn,omitempty"`
}

type CreateBookRequest struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Category    string `json:"category"`
	Description string `json:"description"`
	CoverURL    string `json:"coverUrl"`
	ISBN        string `json:"isbn"`
}

type UpdateBookRequest struct {
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Category    string  `json:"category"`
	Description *string `json:"description"`
	CoverURL    *string `json:"coverUrl"`
	ISBN        *string `json:"isbn"`
}

type AddFavoriteRequest struct {
	UserID uint `json:"userId"`
	BookID uint `json:"bookId"`
}

type ToggleReadRequest struct {
	IsRead bool `json:"isRead"`
}

type FavoriteDto struct {
	ID      uint    `json:"id"`
	UserID  uint    `json:"userId"`
	BookID  uint    `json:"bookId"`
	Book    BookDto `json:"book"`
	IsRead  bool    `json:"isRead"`
	AddedAt string  `json:"addedAt"`
}
