package clients

import (
	"encoding/json"
	"testing"
)

func TestChatID_AcceptsNumberOrString(t *testing.T) {
	cases := map[string]string{
		`{"telegram_chat_id": 123456789}`:   "123456789",
		`{"telegram_chat_id": "987654321"}`: "987654321",
		`{"telegram_chat_id": null}`:        "",
		`{}`:                                "",
	}
	for body, want := range cases {
		var req registerRequest
		if err := json.Unmarshal([]byte(body), &req); err != nil {
			t.Fatalf("unmarshal %s: %v", body, err)
		}
		if string(req.TelegramChatID) != want {
			t.Fatalf("%s: got %q, want %q", body, req.TelegramChatID, want)
		}
	}
}

func TestChatID_RejectsOtherTypes(t *testing.T) {
	var req registerRequest
	if err := json.Unmarshal([]byte(`{"telegram_chat_id": true}`), &req); err == nil {
		t.Fatalf("expected error for boolean chat id")
	}
}
