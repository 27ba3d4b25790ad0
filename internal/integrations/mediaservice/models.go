package mediaservice

// Advertiser клиент рекламной сети из каталога
type Advertiser struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Media медиа-материал из каталога
type Media struct {
	ID              int64  `json:"id"`
	ClientID        int64  `json:"clientId"`
	Name            string `json:"name"`
	Type            string `json:"type"` // video, image, html
	DurationSeconds int    `json:"durationSeconds"`
}
