package web

import (
	"time"

	"quacker/internal/domain"
)

type userDTO struct {
	Handle      string `json:"handle"`
	DisplayName string `json:"display_name,omitempty"`
	Avatar      string `json:"avatar,omitempty"`
}

type sentimentDTO struct {
	Label      domain.SentimentLabel `json:"label"`
	Score      float64               `json:"score"`
	Confidence float64               `json:"confidence"`
}

type quackDTO struct {
	ID        string       `json:"id"`
	Text      string       `json:"text"`
	CreatedAt time.Time    `json:"created_at"`
	Sentiment sentimentDTO `json:"sentiment"`
	Author    userDTO      `json:"author"`
}

type createQuackRequest struct {
	Text      *string    `json:"text"`
	Author    *userDTO   `json:"author,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toUserDTO(u domain.User) userDTO {
	return userDTO{Handle: u.Handle, DisplayName: u.DisplayName, Avatar: u.Avatar}
}

func (u userDTO) toDomain() domain.User {
	return domain.User{Handle: u.Handle, DisplayName: u.DisplayName, Avatar: u.Avatar}
}

func toQuackDTO(q domain.Quack) quackDTO {
	return quackDTO{
		ID:        q.ID,
		Text:      q.Text,
		CreatedAt: q.CreatedAt,
		Sentiment: sentimentDTO{
			Label:      q.Sentiment.Label,
			Score:      q.Sentiment.Score,
			Confidence: q.Sentiment.Confidence,
		},
		Author: toUserDTO(q.Author),
	}
}

func toQuackDTOs(quacks []domain.Quack) []quackDTO {
	out := make([]quackDTO, 0, len(quacks))
	for _, q := range quacks {
		out = append(out, toQuackDTO(q))
	}
	return out
}
