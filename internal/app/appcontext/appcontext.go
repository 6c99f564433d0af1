package appcontext

const (
	EnvCLI Env = iota
	EnvTest
)

// Env is the environment the application graph is built for.
type Env int

func (e Env) String() string {
	switch e {
	case EnvCLI:
		return "cli"
	case EnvTest:
		return "test"
	default:
		return "unknown"
	}
}

type Ctx struct {
	Env Env
}

func Declare(env Env) Ctx {
	return Ctx{
		Env: env,
	}
}

// Persistent reports whether the environment writes anything besides the catalog, such as log
// files.
func (c Ctx) Persistent() bool {
	return c.Env != EnvTest
}
