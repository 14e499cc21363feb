package client

type Link struct {
	Href      string `json:"href"`
	Templated bool   `json:"templated,omitempty"`
}

type Receipt struct {
	Links struct {
		Self Link `json:"self"`
	} `json:"_links"`
	Hash       string            `json:"hash"`
	Source     string            `json:"source"`
	Operation  string            `json:"operation"`
	Attributes map[string]string `json:"attributes"`
	Time       string            `json:"time"`
}

type Whitelist struct {
	Links struct {
		Self          Link `json:"self"`
		Pending       Link `json:"pending"`
		Announcements Link `json:"announcements"`
	} `json:"_links"`
	Members []string `json:"members"`
	Size    int      `json:"size"`
}

type Proposal struct {
	Target    string   `json:"target"`
	Action    string   `json:"action"`
	Confirmed []string `json:"confirmed"`
	Expires   string   `json:"expires"`
}

type ProposalsPage struct {
	Links struct {
		Self Link `json:"self"`
	} `json:"_links"`
	Count    int `json:"count"`
	Embedded struct {
		Records []Proposal `json:"records"`
	} `json:"_embedded"`
}

type Topic struct {
	Links struct {
		Self          Link `json:"self"`
		Announcements Link `json:"announcements"`
	} `json:"_links"`
	Identifier  string `json:"identifier"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

type TopicsPage struct {
	Links struct {
		Self Link `json:"self"`
	} `json:"_links"`
	Count    int `json:"count"`
	Embedded struct {
		Records []Topic `json:"records"`
	} `json:"_embedded"`
}

type Announcement struct {
	Links struct {
		Self   Link `json:"self"`
		Author Link `json:"author"`
		Topic  Link `json:"topic"`
	} `json:"_links"`
	ID      uint64 `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Author  string `json:"author"`
	Topic   *Topic `json:"topic,omitempty"`
	Time    string `json:"time"`
}

type AnnouncementsPage struct {
	Links struct {
		Self Link `json:"self"`
	} `json:"_links"`
	Count    int `json:"count"`
	Embedded struct {
		Records []Announcement `json:"records"`
	} `json:"_embedded"`
}
