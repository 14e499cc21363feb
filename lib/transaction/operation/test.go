package operation

import (
	"boscoin.io/announcer/lib/common/keypair"
)

func MakeTestAddToWhitelist(authors ...string) Operation {
	if len(authors) < 1 {
		authors = []string{keypair.Random().Address()}
	}

	return Operation{
		H: Header{Type: TypeAddToWhitelist},
		B: AddToWhitelist{Authors: authors},
	}
}

func MakeTestRemoveFromWhitelist(authors ...string) Operation {
	return Operation{
		H: Header{Type: TypeRemoveFromWhitelist},
		B: RemoveFromWhitelist{Authors: authors},
	}
}

func MakeTestAnnouncement(title, topic string) Operation {
	return Operation{
		H: Header{Type: TypeAnnouncement},
		B: Announcement{Title: title, Content: "content of " + title, Topic: topic},
	}
}

func MakeTestDeleteAnnouncement(id uint64) Operation {
	return Operation{
		H: Header{Type: TypeDeleteAnnouncement},
		B: DeleteAnnouncement{ID: id},
	}
}

func MakeTestAddTopic(identifier string) Operation {
	return Operation{
		H: Header{Type: TypeAddTopic},
		B: AddTopic{Identifier: identifier, Name: identifier, Description: "about " + identifier, Color: "#000000"},
	}
}

func MakeTestRemoveTopic(identifier string) Operation {
	return Operation{
		H: Header{Type: TypeRemoveTopic},
		B: RemoveTopic{Identifier: identifier},
	}
}
