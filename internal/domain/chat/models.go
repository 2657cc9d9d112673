package chat

import "time"

// RoomType distinguishes the chat surfaces the backend hosts.
type RoomType string

const (
	RoomTeam     RoomType = "team"
	RoomGame     RoomType = "game"
	RoomGeneral  RoomType = "general"
	RoomDistrict RoomType = "district"
)

// Room identifies a chat room and its accessibility.
type Room struct {
	ID           int64    `json:"id"`
	Type         RoomType `json:"roomType"`
	Name         string   `json:"roomName"`
	GameID       string   `json:"gameId,omitempty"`
	TeamID       string   `json:"teamId,omitempty"`
	IsActive     bool     `json:"isActive"`
	IsAccessible bool     `json:"isAccessible"`
	MessageCount int      `json:"messageCount"`
}

// Message is a single chat message as served by the backend.
type Message struct {
	ID          int64     `json:"id"`
	RoomID      int64     `json:"roomId"`
	UserID      string    `json:"userId"`
	UserName    string    `json:"userName"`
	Text        string    `json:"text"`
	WasCensored bool      `json:"wasCensored"`
	CreatedAt   time.Time `json:"createdAt"`
}
