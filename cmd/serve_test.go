package cmd

import (
	"testing"
)

func TestParseCommaSeparatedList(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: nil,
		},
		{
			name:     "single value",
			input:    "work",
			expected: []string{"work"},
		},
		{
			name:     "multiple values",
			input:    "work,personal",
			expected: []string{"work", "personal"},
		},
		{
			name:     "values with spaces around comma",
			input:    "work, personal",
			expected: []string{"work", "personal"},
		},
		{
			name:     "values with leading/trailing spaces",
			input:    "  work  ,  personal  ",
			expected: []string{"work", "personal"},
		},
		{
			name:     "trailing comma",
			input:    "work,personal,",
			expected: []string{"work", "personal"},
		},
		{
			name:     "leading comma",
			input:    ",work,personal",
			expected: []string{"work", "personal"},
		},
		{
			name:     "multiple consecutive commas",
			input:    "work,,personal",
			expected: []string{"work", "personal"},
		},
		{
			name:     "only commas and spaces",
			input:    ",  , , ",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseCommaSeparatedList(tt.input)

			if len(result) != len(tt.expected) {
				t.Fatalf("parseCommaSeparatedList(%q) = %v (len %d), want %v (len %d)",
					tt.input, result, len(result), tt.expected, len(tt.expected))
			}

			for i, v := range result {
				if v != tt.expected[i] {
					t.Errorf("parseCommaSeparatedList(%q)[%d] = %q, want %q",
						tt.input, i, v, tt.expected[i])
				}
			}
		})
	}
}

func TestAccountsFromEnv(t *testing.T) {
	t.Run("default when unset", func(t *testing.T) {
		t.Setenv("SCHEDBOT_ACCOUNTS", "")
		accounts := accountsFromEnv()
		if len(accounts) != 1 || accounts[0] != "default" {
			t.Errorf("accountsFromEnv() = %v, want [default]", accounts)
		}
	})

	t.Run("reads comma-separated roster", func(t *testing.T) {
		t.Setenv("SCHEDBOT_ACCOUNTS", "work, personal")
		accounts := accountsFromEnv()
		if len(accounts) != 2 || accounts[0] != "work" || accounts[1] != "personal" {
			t.Errorf("accountsFromEnv() = %v, want [work personal]", accounts)
		}
	})
}
