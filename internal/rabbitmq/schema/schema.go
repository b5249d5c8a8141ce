package schema

import (
	"encoding/json"
)

type EmailTask struct {
	To      string
	Subject string
	Body    string
}

func (t *EmailTask) Marshal() ([]byte, error) {
	return json.Marshal(t)
}

func (t *EmailTask) Unmarshal(data []byte) error {
	return json.Unmarshal(data, t)
}
