package script

import (
	"strconv"
	"strings"
)

// Name identifies a script command.
type Name string

const (
	NameInit      Name = "init"
	NameFork      Name = "fork"
	NameExit      Name = "exit"
	NameWait      Name = "wait"
	NameSleep     Name = "sleep"
	NameWakeup    Name = "wakeup"
	NameKill      Name = "kill"
	NameNice      Name = "nice"
	NameSchedule  Name = "schedule"
	NameTimeslice Name = "timeslice"
	NameDump      Name = "dump"
)

// arity holds the number of integer arguments of every command.
var arity = map[Name]int{
	NameInit:      0,
	NameFork:      1,
	NameExit:      1,
	NameWait:      1,
	NameSleep:     2,
	NameWakeup:    1,
	NameKill:      1,
	NameNice:      2,
	NameSchedule:  0,
	NameTimeslice: 0,
	NameDump:      0,
}

var aliases = map[string]Name{
	"wake": NameWakeup,
}

// Command is one parsed script line.
type Command struct {
	Name Name
	Args []int
	Line int
}

// Mutating reports whether the command can change the process table.
func (c *Command) Mutating() bool {
	return c.Name != NameDump
}

func (c *Command) String() string {
	builder := strings.Builder{}
	builder.WriteString(string(c.Name))
	for _, arg := range c.Args {
		builder.WriteByte(' ')
		builder.WriteString(strconv.Itoa(arg))
	}
	return builder.String()
}

func lookupName(text string) (Name, bool) {
	text = strings.ToLower(text)
	if name, ok := aliases[text]; ok {
		return name, true
	}
	name := Name(text)
	_, ok := arity[name]
	return name, ok
}
