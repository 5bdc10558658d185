package model

// PMTarget addresses a single user through private messages. It satisfies
// Target so command handlers can reply without caring whether they were
// invoked from a room or a PM.
type PMTarget struct {
	User   *User
	sender Sender
}

func NewPMTarget(u *User, sender Sender) *PMTarget {
	return &PMTarget{User: u, sender: sender}
}

func (t *PMTarget) TargetID() string { return t.User.ID }
func (t *PMTarget) IsPM() bool       { return true }

func (t *PMTarget) Send(text string) {
	t.sender.Send("|/pm " + t.User.ID + ", " + text)
}
