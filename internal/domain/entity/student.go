package entity

import "time"

type Student struct {
	NetID          string    `db:"netid"`
	Name           string    `db:"name"`
	GithubUsername string    `db:"github_username"`
	CreatedAt      time.Time `db:"created_at"`
}
