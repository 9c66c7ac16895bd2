package tasks

import "fmt"

// TaskID identifies one of the daily objectives.
type TaskID uint8

const (
	DailyLogin TaskID = iota
	Win3Times
	Watch3Ads
	PlayWithFriend
	Spend2Hours
)

var allTasks = []TaskID{DailyLogin, Win3Times, Watch3Ads, PlayWithFriend, Spend2Hours}

// All returns every task id in declaration order.
func All() []TaskID {
	out := make([]TaskID, len(allTasks))
	copy(out, allTasks)
	return out
}

func (id TaskID) String() string {
	switch id {
	case DailyLogin:
		return "DailyLogin"
	case Win3Times:
		return "Win3Times"
	case Watch3Ads:
		return "Watch3Ads"
	case PlayWithFriend:
		return "PlayWithFriend"
	case Spend2Hours:
		return "Spend2Hours"
	default:
		return "Unknown"
	}
}

// ParseTaskID parses the String form of a task id.
func ParseTaskID(s string) (TaskID, error) {
	for _, id := range allTasks {
		if id.String() == s {
			return id, nil
		}
	}
	return 0, fmt.Errorf("unknown task: %q", s)
}

// Record is the state of one task for the current day.
type Record struct {
	ID        TaskID `json:"id"`
	Name      string `json:"name"`
	Progress  int    `json:"progress"`
	Completed bool   `json:"completed"`
}
