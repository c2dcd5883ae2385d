package history

import "testing"

func TestInvokesBinary(t *testing.T) {
	tests := []struct {
		command string
		binary  string
		want    bool
	}{
		{"git status", "git", true},
		{"git status", "npm", false},
		{"sudo npm install", "npm", true},
		{"GIT status", "git", true},
		{"ls | git diff", "git", true},
		{"/usr/local/bin/jq/filter", "jq", false},
		{"jq/filter run", "jq", true},
		{"gitk --all", "git", false},
		{"sudosudonpm install", "npm", true}, // "sudo" prefixes strip repeatedly
		{"sudoedit /etc/hosts", "edit", true},
		{"echo git", "git", true}, // token match anywhere is accepted
		{"", "git", false},
		{"git status", "", false},
	}

	for _, tt := range tests {
		e := Entry{Command: tt.command}
		if got := e.InvokesBinary(tt.binary); got != tt.want {
			t.Errorf("InvokesBinary(%q, %q) = %v, want %v", tt.command, tt.binary, got, tt.want)
		}
	}
}

func TestBaseCommand(t *testing.T) {
	e := Entry{Command: "git status --short"}
	if got := e.BaseCommand(); got != "git" {
		t.Errorf("expected base command %q, got %q", "git", got)
	}

	empty := Entry{Command: "   "}
	if got := empty.BaseCommand(); got != "" {
		t.Errorf("expected empty base command, got %q", got)
	}
}

func TestGuessFormat(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"/home/u/.bash_history", FormatBash},
		{"/home/u/.local/share/fish/fish_history", FormatFish},
		{"/home/u/.zsh_history", FormatZsh},
		{"/home/u/.history", FormatZsh}, // default
	}

	for _, tt := range tests {
		if got := GuessFormat(tt.path); got != tt.want {
			t.Errorf("GuessFormat(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
