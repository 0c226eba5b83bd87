package redisstore

import "testing"

func TestKeyGen(t *testing.T) {
	k := NewKeyGen("main")

	tests := []struct {
		got  string
		want string
	}{
		{k.Meta("styles/default.sld"), "res:main:meta:styles/default.sld"},
		{k.Data("styles/default.sld"), "res:main:data:styles/default.sld"},
		{k.Dir("styles"), "res:main:dir:styles"},
		{k.Meta(""), "res:main:meta:"},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("key = %q, want %q", tt.got, tt.want)
		}
	}
}
