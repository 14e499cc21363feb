package operation

// Announcement publishes a message; Topic is the identifier of a
// registered topic or empty.
type Announcement struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Topic   string `json:"topic,omitempty"`
}

func NewAnnouncement(title, content, topic string) Announcement {
	return Announcement{Title: title, Content: content, Topic: topic}
}

func (o Announcement) IsWellFormed() error {
	return nil
}

type DeleteAnnouncement struct {
	ID uint64 `json:"id"`
}

func NewDeleteAnnouncement(id uint64) DeleteAnnouncement {
	return DeleteAnnouncement{ID: id}
}

func (o DeleteAnnouncement) IsWellFormed() error {
	return nil
}
