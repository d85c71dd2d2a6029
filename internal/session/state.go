package session

type State int

const (
	StateBootstrapping State = iota
	StateMainMenu
	StateListing
	StateFilteringByStatus
	StateFilteringByKeyword
	StateSortingByPriority
	StateSortingByDate
	StateAdding
	StateDeleting
	StateUpdating
	StateTerminated
)

var stateNames = map[State]string{
	StateBootstrapping:      "bootstrapping",
	StateMainMenu:           "main menu",
	StateListing:            "listing",
	StateFilteringByStatus:  "filtering by status",
	StateFilteringByKeyword: "filtering by keyword",
	StateSortingByPriority:  "sorting by priority",
	StateSortingByDate:      "sorting by date",
	StateAdding:             "adding",
	StateDeleting:           "deleting",
	StateUpdating:           "updating",
	StateTerminated:         "terminated",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}
