package form

import "strings"

// Kind is the UI kind declared by a field. The set is closed; Dispatch maps
// every member to a control and sends anything else to the generic input.
type Kind string

const (
	KindText              Kind = "text"
	KindEmail             Kind = "email"
	KindPassword          Kind = "password"
	KindNumber            Kind = "number"
	KindTel               Kind = "tel"
	KindURL               Kind = "url"
	KindTextarea          Kind = "textarea"
	KindSelect            Kind = "select"
	KindSearchSelect      Kind = "searchselect"
	KindMultiSelect       Kind = "multiselect"
	KindMultiSearchSelect Kind = "multisearchselect"
	KindCheckbox          Kind = "checkbox"
	KindSwitch            Kind = "switch"
	KindDate              Kind = "date"
	KindFile              Kind = "file"
	KindHidden            Kind = "hidden"
)

var kinds = []Kind{
	KindText, KindEmail, KindPassword, KindNumber, KindTel, KindURL,
	KindTextarea, KindSelect, KindSearchSelect, KindMultiSelect,
	KindMultiSearchSelect, KindCheckbox, KindSwitch, KindDate, KindFile,
	KindHidden,
}

// Kinds lists every supported kind in declaration order.
func Kinds() []Kind {
	return append([]Kind(nil), kinds...)
}

// ParseKind normalises raw into a Kind. Unknown names report false.
func ParseKind(raw string) (Kind, bool) {
	candidate := Kind(strings.ToLower(strings.TrimSpace(raw)))
	for _, k := range kinds {
		if k == candidate {
			return k, true
		}
	}
	return candidate, false
}

// Control identifies the input control a field is bound to.
type Control string

const (
	ControlInput        Control = "input"
	ControlPassword     Control = "password"
	ControlTextarea     Control = "textarea"
	ControlSelect       Control = "select"
	ControlSearchSelect Control = "search-select"
	ControlCheckbox     Control = "checkbox"
	ControlSwitch       Control = "switch"
	ControlDatePicker   Control = "date-picker"
	ControlFileUpload   Control = "file-upload"
	ControlHidden       Control = "hidden"
)

// Target is the result of dispatching a kind.
type Target struct {
	Control Control
	// Multiple is set for the search select control in multi-value mode.
	Multiple bool
	// InputType is the HTML-style type hint for the generic input control.
	InputType string
}

// Dispatch selects the control for kind. multiselect and multisearchselect
// share the search select control in multiple mode; unknown kinds fall back
// to the generic text input.
func Dispatch(kind Kind) Target {
	switch kind {
	case KindPassword:
		return Target{Control: ControlPassword}
	case KindTextarea:
		return Target{Control: ControlTextarea}
	case KindSelect:
		return Target{Control: ControlSelect}
	case KindSearchSelect:
		return Target{Control: ControlSearchSelect}
	case KindMultiSelect, KindMultiSearchSelect:
		return Target{Control: ControlSearchSelect, Multiple: true}
	case KindCheckbox:
		return Target{Control: ControlCheckbox}
	case KindSwitch:
		return Target{Control: ControlSwitch}
	case KindDate:
		return Target{Control: ControlDatePicker}
	case KindFile:
		return Target{Control: ControlFileUpload}
	case KindHidden:
		return Target{Control: ControlHidden}
	case KindEmail, KindNumber, KindTel, KindURL:
		return Target{Control: ControlInput, InputType: string(kind)}
	default:
		return Target{Control: ControlInput, InputType: string(KindText)}
	}
}
