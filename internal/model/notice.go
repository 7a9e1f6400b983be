package model

// NoticeTitle is the title of every notice shown to the user.
const NoticeTitle = "Oops"

// Notice is a user-facing modal message.
type Notice struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// NewNotice builds a notice with the standard title.
func NewNotice(message string) Notice {
	return Notice{Title: NoticeTitle, Message: message}
}
