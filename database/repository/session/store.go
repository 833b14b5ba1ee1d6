package session

import "lawyerconnect/models"

// Store bundles the session tables.
type Store struct {
	Conversations *Table[models.Conversation]
	Messages      *Table[models.Message]
	Posts         *Table[models.CommunityPost]
	Likes         *Table[models.PostLike]
	Comments      *Table[models.PostComment]
}

func NewStore() *Store {
	return &Store{
		Conversations: NewTable[models.Conversation]("conversation"),
		Messages:      NewTable[models.Message]("message"),
		Posts:         NewTable[models.CommunityPost]("post"),
		Likes:         NewTable[models.PostLike]("like"),
		Comments:      NewTable[models.PostComment]("comment"),
	}
}
