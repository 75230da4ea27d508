package domain

import "testing"

func TestToggle(t *testing.T) {
	tests := []struct {
		name           string
		current        SelectionState
		target         ClickTarget
		expectedTo     SelectionState
		wantSelected   bool
		wantDeselected bool
	}{
		{
			name:         "card click selects",
			current:      Unselected,
			target:       TargetCard,
			expectedTo:   Selected,
			wantSelected: true,
		},
		{
			name:           "card click deselects",
			current:        Selected,
			target:         TargetCard,
			expectedTo:     Unselected,
			wantDeselected: true,
		},
		{
			name:       "link click on unselected passes through",
			current:    Unselected,
			target:     TargetLink,
			expectedTo: Unselected,
		},
		{
			name:       "link click on selected passes through",
			current:    Selected,
			target:     TargetLink,
			expectedTo: Selected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := Toggle(tt.current, tt.target)
			if tr.To != tt.expectedTo {
				t.Errorf("Toggle() To = %v, want %v", tr.To, tt.expectedTo)
			}
			if tr.Selected() != tt.wantSelected {
				t.Errorf("Selected() = %v, want %v", tr.Selected(), tt.wantSelected)
			}
			if tr.Deselected() != tt.wantDeselected {
				t.Errorf("Deselected() = %v, want %v", tr.Deselected(), tt.wantDeselected)
			}
			if tr.Changed() != (tt.wantSelected || tt.wantDeselected) {
				t.Errorf("Changed() = %v", tr.Changed())
			}
		})
	}
}

func TestParseClickTarget(t *testing.T) {
	tests := []struct {
		input   string
		want    ClickTarget
		wantErr bool
	}{
		{input: "", want: TargetCard},
		{input: "card", want: TargetCard},
		{input: "link", want: TargetLink},
		{input: "button", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseClickTarget(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseClickTarget(%q) err = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseClickTarget(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
