package testutil

import (
	"fmt"

	tele "gopkg.in/telebot.v3"
)

// FakeContext is a tele.Context that records replies. Methods it does not
// override panic, so tests only reach the handler paths they set up.
type FakeContext struct {
	tele.Context

	User     *tele.User
	Input    string
	Press    *tele.Callback
	Sent     []string
	Edited   []string
	Markups  []*tele.ReplyMarkup
	Answered []*tele.CallbackResponse

	store map[string]interface{}
}

// NewFakeText builds a context for a text message from userID
func NewFakeText(userID int64, text string) *FakeContext {
	return &FakeContext{User: &tele.User{ID: userID, FirstName: "Test"}, Input: text}
}

// NewFakeCallback builds a context for an inline button press from userID
func NewFakeCallback(userID int64, unique, data string) *FakeContext {
	return &FakeContext{
		User:  &tele.User{ID: userID, FirstName: "Test"},
		Press: &tele.Callback{ID: "cb1", Unique: unique, Data: data},
	}
}

func (f *FakeContext) Sender() *tele.User {
	return f.User
}

func (f *FakeContext) Text() string {
	return f.Input
}

func (f *FakeContext) Callback() *tele.Callback {
	return f.Press
}

func (f *FakeContext) Send(what interface{}, opts ...interface{}) error {
	f.Sent = append(f.Sent, fmt.Sprint(what))
	f.keepMarkup(opts)
	return nil
}

func (f *FakeContext) Edit(what interface{}, opts ...interface{}) error {
	f.Edited = append(f.Edited, fmt.Sprint(what))
	f.keepMarkup(opts)
	return nil
}

func (f *FakeContext) Respond(resp ...*tele.CallbackResponse) error {
	if len(resp) == 0 {
		f.Answered = append(f.Answered, &tele.CallbackResponse{})
		return nil
	}
	f.Answered = append(f.Answered, resp...)
	return nil
}

func (f *FakeContext) Get(key string) interface{} {
	return f.store[key]
}

func (f *FakeContext) Set(key string, val interface{}) {
	if f.store == nil {
		f.store = make(map[string]interface{})
	}
	f.store[key] = val
}

// LastReply returns the most recent sent or edited text
func (f *FakeContext) LastReply() string {
	if len(f.Edited) > 0 && f.Press != nil {
		return f.Edited[len(f.Edited)-1]
	}
	if len(f.Sent) == 0 {
		return ""
	}
	return f.Sent[len(f.Sent)-1]
}

// LastMarkup returns the keyboard attached to the most recent reply
func (f *FakeContext) LastMarkup() *tele.ReplyMarkup {
	if len(f.Markups) == 0 {
		return nil
	}
	return f.Markups[len(f.Markups)-1]
}

func (f *FakeContext) keepMarkup(opts []interface{}) {
	for _, opt := range opts {
		if m, ok := opt.(*tele.ReplyMarkup); ok {
			f.Markups = append(f.Markups, m)
		}
	}
}
