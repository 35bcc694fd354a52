package entity

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID         string    `json:"id" firestore:"id"`
	Name       string    `json:"name" firestore:"name"`
	Email      string    `json:"email" firestore:"email"`
	Phone      string    `json:"phone,omitempty" firestore:"phone,omitempty"`
	Batch      string    `json:"batch,omitempty" firestore:"batch,omitempty"`
	Department string    `json:"department,omitempty" firestore:"department,omitempty"`
	Hostel     string    `json:"hostel,omitempty" firestore:"hostel,omitempty"`
	RoomNumber string    `json:"room_number,omitempty" firestore:"roomNumber,omitempty"`
	Role       string    `json:"role" firestore:"role"`
	CreatedAt  time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt  time.Time `json:"updated_at" firestore:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
