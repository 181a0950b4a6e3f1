package domain

type CommandType string

const (
	CommandPrice   CommandType = "price"
	CommandHelp    CommandType = "help"
	CommandUnknown CommandType = "unknown"
)

func (c CommandType) String() string {
	return string(c)
}

func (c CommandType) IsValid() bool {
	switch c {
	case CommandPrice, CommandHelp, CommandUnknown:
		return true
	default:
		return false
	}
}
