package detectors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func gapNames(src string, t *testing.T) []string {
	var names []string
	for _, g := range AuthGaps(mustParse(t, src)) {
		names = append(names, g.FunctionName)
	}
	return names
}

func TestAuthGaps(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "mutation without auth",
			src: `
struct C;
impl C {
    pub fn set_value(env: Env, v: u32) {
        env.storage().instance().set(&KEY, &v);
    }
}`,
			want: []string{"set_value"},
		},
		{
			name: "auth as method call",
			src: `
struct C;
impl C {
    pub fn set_value(env: Env, admin: Address, v: u32) {
        admin.require_auth();
        env.storage().persistent().set(&KEY, &v);
    }
}`,
		},
		{
			name: "auth as free call in unrelated branch",
			src: `
struct C;
impl C {
    pub fn remove_value(env: Env, admin: Address, flag: bool) {
        if flag {
            require_auth_for_args(&admin, ());
        }
        env.storage().temporary().remove(&KEY);
    }
}`,
		},
		{
			name: "mutation nested in match arm",
			src: `
struct C;
impl C {
    pub fn update(env: Env, v: Option<u32>) {
        match v {
            Some(x) => env.storage().persistent().update(&KEY, |_| x),
            None => {}
        }
    }
}`,
			want: []string{"update"},
		},
		{
			name: "set on a non-storage receiver",
			src: `
struct C;
impl C {
    pub fn local(mut cache: Map<u32, u32>) {
        cache.set(1, 2);
    }
}`,
		},
		{
			name: "read-only access",
			src: `
struct C;
impl C {
    pub fn read(env: Env) -> u32 {
        env.storage().instance().get(&KEY).unwrap_or(0)
    }
}`,
		},
		{
			name: "private methods and free functions are not entry points",
			src: `
fn free(env: Env) {
    env.storage().instance().set(&KEY, &1);
}
struct C;
impl C {
    fn private(env: Env) {
        env.storage().instance().set(&KEY, &1);
    }
}`,
		},
		{
			name: "restricted visibility is not public",
			src: `
struct C;
impl C {
    pub(crate) fn helper(env: Env, v: u32) {
        env.storage().instance().set(&1, &v);
    }
    pub(super) fn other(env: Env) {
        env.storage().instance().remove(&1);
    }
}`,
		},
		{
			name: "each gap reported once",
			src: `
struct C;
impl C {
    pub fn twice(env: Env) {
        env.storage().instance().set(&A, &1);
        env.storage().instance().set(&B, &2);
    }
    pub fn other(env: Env) {
        env.storage().persistent().remove(&A);
    }
}`,
			want: []string{"twice", "other"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, gapNames(tt.src, t))
		})
	}
}

func TestAuthGapLine(t *testing.T) {
	gaps := AuthGaps(mustParse(t, `
struct C;
impl C {
    pub fn write(env: Env) {
        env.storage().instance().set(&A, &1);
    }
}`))
	assert.Len(t, gaps, 1)
	assert.Equal(t, 4, gaps[0].Line)
}
