package form

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDispatch_CoversEveryKind(t *testing.T) {
	want := map[Kind]Target{
		KindText:              {Control: ControlInput, InputType: "text"},
		KindEmail:             {Control: ControlInput, InputType: "email"},
		KindPassword:          {Control: ControlPassword},
		KindNumber:            {Control: ControlInput, InputType: "number"},
		KindTel:               {Control: ControlInput, InputType: "tel"},
		KindURL:               {Control: ControlInput, InputType: "url"},
		KindTextarea:          {Control: ControlTextarea},
		KindSelect:            {Control: ControlSelect},
		KindSearchSelect:      {Control: ControlSearchSelect},
		KindMultiSelect:       {Control: ControlSearchSelect, Multiple: true},
		KindMultiSearchSelect: {Control: ControlSearchSelect, Multiple: true},
		KindCheckbox:          {Control: ControlCheckbox},
		KindSwitch:            {Control: ControlSwitch},
		KindDate:              {Control: ControlDatePicker},
		KindFile:              {Control: ControlFileUpload},
		KindHidden:            {Control: ControlHidden},
	}

	if len(want) != len(Kinds()) {
		t.Fatalf("dispatch table covers %d kinds, Kinds() lists %d", len(want), len(Kinds()))
	}
	for _, kind := range Kinds() {
		expected, ok := want[kind]
		if !ok {
			t.Fatalf("kind %q has no expected dispatch", kind)
		}
		if diff := cmp.Diff(expected, Dispatch(kind)); diff != "" {
			t.Fatalf("dispatch %q mismatch (-want +got):\n%s", kind, diff)
		}
	}
}

func TestDispatch_UnknownKindFallsBackToInput(t *testing.T) {
	for _, kind := range []Kind{"", "color", "radio"} {
		got := Dispatch(kind)
		if got.Control != ControlInput || got.InputType != "text" || got.Multiple {
			t.Fatalf("kind %q: unexpected fallback %+v", kind, got)
		}
	}
}

func TestParseKind(t *testing.T) {
	if k, ok := ParseKind(" Email "); !ok || k != KindEmail {
		t.Fatalf("expected email, got %q (%v)", k, ok)
	}
	if _, ok := ParseKind("radio"); ok {
		t.Fatalf("radio is not a supported kind")
	}
}
