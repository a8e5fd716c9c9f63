package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindUserConfig(t *testing.T) {
	t.Setenv("PROTOSYNTH_CONFIG", "")

	tests := []struct {
		name string
		args []string
		env  string
		want string
	}{
		{name: "equals form", args: []string{"generate", "--config=a.yaml"}, want: "a.yaml"},
		{name: "separate value", args: []string{"--config", "b.toml", "generate"}, want: "b.toml"},
		{name: "dangling flag", args: []string{"--config"}, want: ""},
		{name: "environment", args: []string{"generate"}, env: "c.json", want: "c.json"},
		{name: "flag wins over environment", args: []string{"--config=d.json"}, env: "c.json", want: "d.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PROTOSYNTH_CONFIG", tt.env)
			assert.Equal(t, tt.want, findUserConfig(tt.args))
		})
	}
}
