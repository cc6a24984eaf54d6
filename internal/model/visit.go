package model

import "time"

// Visit хранит статистику посещений бота одним пользователем.
type Visit struct {
	UserID     int64     `json:"user_id"`
	Username   string    `json:"username"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	FirstSeen  time.Time `json:"first_seen"`
	LastSeen   time.Time `json:"last_seen"`
	VisitCount int       `json:"visit_count"`
	LastAction string    `json:"last_action"`
}

// VisitStats агрегированная статистика для меню владельца.
type VisitStats struct {
	UniqueUsers    int `json:"unique_users"`
	RepeatVisitors int `json:"repeat_visitors"`
	InactiveUsers  int `json:"inactive_users"`
}
