// Package convo owns the conversation threads. All mutation is serialized
// through one Store so turn-complete callbacks and user sends cannot lose
// appends to each other.
package convo

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Role identifies the author of a message.
type Role string

const (
	RoleUser  Role = "user"
	RolePanda Role = "panda"
)

// Reaction is the panda's visual reaction tag for a reply.
type Reaction string

const (
	ReactionEyeRoll  Reaction = "eye-roll"
	ReactionFacepalm Reaction = "facepalm"
	ReactionShrug    Reaction = "shrug"
	ReactionSlowClap Reaction = "slow-clap"
	ReactionNone     Reaction = "none"
)

// Greeting seeds every fresh conversation.
const Greeting = "So, you're here. Spit it out. What fresh disappointment does the day hold?"

// Message is immutable once appended, except for the transient Playing flag,
// which the store keeps exclusive per conversation. Audio is kept in memory
// only and never persisted.
type Message struct {
	Role     Role     `json:"role"`
	Text     string   `json:"text"`
	Reaction Reaction `json:"reaction,omitempty"`
	Audio    []byte   `json:"-"`
	Playing  bool     `json:"-"`
}

// Conversation is one message thread.
type Conversation struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Messages []Message `json:"messages"`
	Date     time.Time `json:"date"`
}

// Store holds all threads and the active selection.
type Store struct {
	mu       sync.Mutex
	convos   []*Conversation
	activeID string
}

func newConversation() *Conversation {
	return &Conversation{
		ID:       uuid.NewString(),
		Title:    "New Chat",
		Messages: []Message{{Role: RolePanda, Text: Greeting, Reaction: ReactionNone}},
		Date:     time.Now(),
	}
}

// NewStore restores persisted threads, or starts with one fresh conversation.
// The first thread becomes active.
func NewStore(restored []*Conversation) *Store {
	s := &Store{}
	if len(restored) == 0 {
		c := newConversation()
		s.convos = []*Conversation{c}
		s.activeID = c.ID
		return s
	}
	s.convos = restored
	s.activeID = restored[0].ID
	return s
}

// Create prepends a fresh conversation and selects it.
func (s *Store) Create() Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := newConversation()
	s.convos = append([]*Conversation{c}, s.convos...)
	s.activeID = c.ID
	return cloneConversation(c)
}

// Select makes id the active conversation. Unknown ids are ignored.
func (s *Store) Select(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.convos {
		if c.ID == id {
			s.activeID = id
			return true
		}
	}
	return false
}

// ActiveID returns the active conversation id.
func (s *Store) ActiveID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeID
}

// Delete removes a conversation. Deleting the last thread replaces it with a
// fresh one; deleting the active thread moves selection to the first.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.convos[:0]
	for _, c := range s.convos {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	s.convos = kept
	if len(s.convos) == 0 {
		c := newConversation()
		s.convos = []*Conversation{c}
		s.activeID = c.ID
		return
	}
	if s.activeID == id {
		s.activeID = s.convos[0].ID
	}
}

// Append adds a message to the given conversation. Unknown ids are a no-op.
func (s *Store) Append(id string, msg Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c := s.findLocked(id); c != nil {
		c.Messages = append(c.Messages, msg)
	}
}

// MessageCount reports the message count of a conversation, 0 if unknown.
func (s *Store) MessageCount(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c := s.findLocked(id); c != nil {
		return len(c.Messages)
	}
	return 0
}

// SetTitle retitles a conversation.
func (s *Store) SetTitle(id, title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c := s.findLocked(id); c != nil {
		c.Title = title
	}
}

// SetPlaying marks exactly one message of the conversation as playing and
// clears the flag everywhere else. index -1 clears all.
func (s *Store) SetPlaying(id string, index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.findLocked(id)
	if c == nil {
		return
	}
	for i := range c.Messages {
		c.Messages[i].Playing = i == index
	}
}

// Get returns a copy of one conversation.
func (s *Store) Get(id string) (Conversation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c := s.findLocked(id); c != nil {
		return cloneConversation(c), true
	}
	return Conversation{}, false
}

// List returns copies of all conversations, newest first.
func (s *Store) List() []Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Conversation, 0, len(s.convos))
	for _, c := range s.convos {
		out = append(out, cloneConversation(c))
	}
	return out
}

func (s *Store) findLocked(id string) *Conversation {
	for _, c := range s.convos {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func cloneConversation(c *Conversation) Conversation {
	out := *c
	out.Messages = make([]Message, len(c.Messages))
	copy(out.Messages, c.Messages)
	return out
}
