package editor

import "sync"

type Message struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
}

// Workbench is an in-memory Window holding at most one active buffer and
// the messages shown so far.
type Workbench struct {
	mu       sync.Mutex
	active   *Buffer
	messages []Message
}

func NewWorkbench() *Workbench { return &Workbench{} }

func (w *Workbench) Activate(b *Buffer) {
	w.mu.Lock()
	w.active = b
	w.mu.Unlock()
}

func (w *Workbench) ActiveEditor() Editor {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.active == nil {
		return nil
	}
	return w.active
}

func (w *Workbench) ShowInformationMessage(msg string) {
	w.push(Message{Level: LevelInfo, Text: msg})
}

func (w *Workbench) ShowErrorMessage(msg string) {
	w.push(Message{Level: LevelError, Text: msg})
}

func (w *Workbench) Messages() []Message {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Message, len(w.messages))
	copy(out, w.messages)
	return out
}

func (w *Workbench) push(m Message) {
	w.mu.Lock()
	w.messages = append(w.messages, m)
	w.mu.Unlock()
}
