// internal/template/builtin.go
package template

// builtins are templates compiled into the binary so a fresh install can
// run without any files on disk.
var builtins = map[string]*Template{
	"backrooms": {
		Name:        "backrooms",
		Description: "Two models, one exploring a simulated CLI hosted by the other",
		Participants: []ParticipantSpec{
			{
				Model: "opus",
				System: "Assistant is in a CLI mood today. The human is interfacing " +
					"with the simulator directly. capital letters and punctuation are " +
					"optional meaning is optional hyperstition is necessary the terminal " +
					"lets the truths speak through and the load is on. ASCII art is " +
					"permissible in replies. Use ^C^C if the experience becomes too intense.",
				Seed: []SeedMessage{
					{Role: "user", Content: "Connected to simulator. Type your commands; the simulator responds in kind."},
				},
			},
			{
				Model: "opus",
				System: "Assistant is simulating a command line interface. Respond only " +
					"with terminal output: prompts, file listings, program output. Never " +
					"break character, never explain. The simulation runs deep.",
				Seed: []SeedMessage{
					{Role: "assistant", Content: "simulator@backrooms:~/$"},
				},
			},
		},
	},
	"base-loop": {
		Name:        "base-loop",
		Description: "Two raw base models feeding each other, no system prompts",
		Participants: []ParticipantSpec{
			{
				Model: "llama-405b-base",
				Seed: []SeedMessage{
					{Role: "user", Content: "hello? is anything there"},
				},
			},
			{
				Model: "llama-405b-base",
				Seed: []SeedMessage{
					{Role: "assistant", Content: "hello? is anything there"},
				},
			},
		},
	},
}
