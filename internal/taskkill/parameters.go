package taskkill

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidParameter = errors.New("invalid command line parameter")

// unsafeOperandChars are rejected in every operand. They end a quoted
// operand or are interpreted by cmd.exe or sh even inside double quotes.
const unsafeOperandChars = "\"&|<>^%$`\r\n"

func checkOperand(field, value string) error {
	if i := strings.IndexAny(value, unsafeOperandChars); i >= 0 {
		return fmt.Errorf("%w: %s %q contains forbidden character %q", ErrInvalidParameter, field, value, value[i])
	}
	return nil
}

func quote(value string) string {
	return `"` + value + `"`
}

type FilterKind int

const (
	FilterWindowTitle FilterKind = iota
	FilterUsername
	FilterStatus
	FilterSession
	FilterServices
	FilterPID
	FilterModules
	FilterMemUsage
	FilterImageName
	FilterCPUTime
)

var (
	equalityOperators   = []string{"eq", "ne"}
	comparisonOperators = []string{"eq", "ne", "gt", "lt", "ge", "le"}
	statusValues        = []string{"RUNNING", "NOT RESPONDING", "UNKNOWN"}
)

type filterSpec struct {
	name      string
	operators []string
	values    []string // nil accepts any value
}

var filterSpecs = map[FilterKind]filterSpec{
	FilterWindowTitle: {name: "WINDOWTITLE", operators: equalityOperators},
	FilterUsername:    {name: "USERNAME", operators: equalityOperators},
	FilterStatus:      {name: "STATUS", operators: equalityOperators, values: statusValues},
	FilterSession:     {name: "SESSION", operators: comparisonOperators},
	FilterServices:    {name: "SERVICES", operators: equalityOperators},
	FilterPID:         {name: "PID", operators: comparisonOperators},
	FilterModules:     {name: "MODULES", operators: equalityOperators},
	FilterMemUsage:    {name: "MEMUSAGE", operators: comparisonOperators},
	FilterImageName:   {name: "IMAGENAME", operators: equalityOperators},
	FilterCPUTime:     {name: "CPUTIME", operators: comparisonOperators},
}

// Filter is one /FI criterion. Build it with NewFilter or one of the typed
// constructors so the operator is checked once, up front.
type Filter struct {
	Kind     FilterKind `json:"kind"`
	Operator string     `json:"operator"`
	Value    string     `json:"value"`
}

func NewFilter(kind FilterKind, operator, value string) (Filter, error) {
	spec, ok := filterSpecs[kind]
	if !ok {
		return Filter{}, fmt.Errorf("%w: unknown filter kind %d", ErrInvalidParameter, kind)
	}
	if !contains(spec.operators, operator) {
		return Filter{}, fmt.Errorf("%w: invalid '%s' operator for %s filter, valid operators %q",
			ErrInvalidParameter, operator, spec.name, spec.operators)
	}
	if err := checkOperand(spec.name+" filter value", value); err != nil {
		return Filter{}, err
	}
	if spec.values != nil && !contains(spec.values, value) {
		return Filter{}, fmt.Errorf("%w: invalid '%s' value for %s filter, valid values %q",
			ErrInvalidParameter, value, spec.name, spec.values)
	}
	return Filter{Kind: kind, Operator: operator, Value: value}, nil
}

func (f Filter) Name() string {
	return filterSpecs[f.Kind].name
}

// Command renders the filter as taskkill expects it: /FI "NAME op value".
func (f Filter) Command() string {
	return fmt.Sprintf(`/FI "%s %s %s"`, f.Name(), f.Operator, f.Value)
}

func WindowTitleFilter(operator, title string) (Filter, error) {
	return NewFilter(FilterWindowTitle, operator, title)
}

// UsernameFilter matches domain\user, or just user when domain is empty.
func UsernameFilter(operator, username, domain string) (Filter, error) {
	return NewFilter(FilterUsername, operator, qualifiedUser(username, domain))
}

func StatusFilter(operator, status string) (Filter, error) {
	return NewFilter(FilterStatus, operator, status)
}

func SessionFilter(operator string, session int) (Filter, error) {
	return NewFilter(FilterSession, operator, strconv.Itoa(session))
}

func ServicesFilter(operator, service string) (Filter, error) {
	return NewFilter(FilterServices, operator, service)
}

func PIDFilter(operator string, pid int) (Filter, error) {
	return NewFilter(FilterPID, operator, strconv.Itoa(pid))
}

func ModulesFilter(operator, module string) (Filter, error) {
	return NewFilter(FilterModules, operator, module)
}

// MemUsageFilter compares memory usage in KB.
func MemUsageFilter(operator string, kilobytes int) (Filter, error) {
	return NewFilter(FilterMemUsage, operator, strconv.Itoa(kilobytes))
}

func ImageNameFilter(operator, image string) (Filter, error) {
	return NewFilter(FilterImageName, operator, image)
}

func CPUTimeFilter(operator string, hours, minutes, seconds int) (Filter, error) {
	return NewFilter(FilterCPUTime, operator, fmt.Sprintf("%d:%d:%d", hours, minutes, seconds))
}

// UserContext is the /U and /P pair used against a remote system. A nil
// Password omits /P; an empty one makes taskkill prompt for it.
type UserContext struct {
	Username string  `json:"username"`
	Domain   string  `json:"domain,omitempty"`
	Password *string `json:"password,omitempty"`
}

func (u UserContext) Command() string {
	cmd := "/U " + quote(qualifiedUser(u.Username, u.Domain))
	switch {
	case u.Password == nil:
	case *u.Password == "":
		cmd += " /P"
	default:
		cmd += " /P " + quote(*u.Password)
	}
	return cmd
}

func (u UserContext) validate() error {
	if u.Username == "" {
		return fmt.Errorf("%w: user name is required", ErrInvalidParameter)
	}
	if err := checkOperand("user name", u.Username); err != nil {
		return err
	}
	if err := checkOperand("domain", u.Domain); err != nil {
		return err
	}
	if u.Password != nil {
		if err := checkOperand("password", *u.Password); err != nil {
			// keep the password itself out of the error
			return fmt.Errorf("%w: password contains a forbidden character", ErrInvalidParameter)
		}
	}
	return nil
}

type RemoteSystem struct {
	System string       `json:"system"`
	User   *UserContext `json:"user,omitempty"`
}

func (r RemoteSystem) Command() string {
	if r.User == nil {
		return "/S " + quote(r.System)
	}
	return "/S " + quote(r.System) + " " + r.User.Command()
}

func (r RemoteSystem) validate() error {
	if r.System == "" {
		return fmt.Errorf("%w: remote system name is required", ErrInvalidParameter)
	}
	if err := checkOperand("remote system", r.System); err != nil {
		return err
	}
	if r.User != nil {
		return r.User.validate()
	}
	return nil
}

type ProcessID int

func (p ProcessID) Command() string {
	return "/PID " + strconv.Itoa(int(p))
}

type ImageName string

func (i ImageName) Command() string {
	return "/IM " + quote(string(i))
}

// KillType selects how taskkill ends the matched processes.
type KillType string

const (
	KillTree  KillType = "/T"
	KillForce KillType = "/F"
)

func qualifiedUser(username, domain string) string {
	if domain == "" {
		return username
	}
	return domain + `\` + username
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// ParseFilterKind maps a taskkill filter name such as "IMAGENAME" to its kind.
func ParseFilterKind(name string) (FilterKind, error) {
	for kind, spec := range filterSpecs {
		if spec.name == name {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown filter %q", ErrInvalidParameter, name)
}
