package registry

// Default builds the arcade's ten-department table
func Default() Registry {
	return New(
		Entry{
			Department: Department{ID: "it", Name: "Information Technology", Tagline: "Tech Wizards"},
			Descriptor: Descriptor{
				Kind:     SystemDecomposition,
				Accent:   "#60a5fa",
				Title:    "THINK LIKE A SYSTEM",
				Subtitle: "Break a system into its moving parts",
				Icon:     "code",
				Quote:    `"Computers are fast, accurate, and stupid. Humans are slow, inaccurate, and brilliant. Together they are powerful."`,
			},
		},
		Entry{
			Department: Department{ID: "hr", Name: "Human Resource", Tagline: "People Power"},
			Descriptor: Descriptor{
				Kind:     RoleGuessing,
				Accent:   "#f87171",
				Title:    "HUMAN MATCH",
				Subtitle: "Ask questions to find your role",
				Icon:     "users",
				Quote:    `"Train people well enough so they can leave, treat them well enough so they don't want to."`,
			},
		},
		Entry{
			Department: Department{ID: "pm", Name: "Project Management", Tagline: "Project Masters"},
			Descriptor: Descriptor{
				Kind:     SequenceOrdering,
				Accent:   "#facc15",
				Title:    "TASK SHUFFLE",
				Subtitle: "Sequence the project phases",
				Icon:     "target",
				Quote:    `"Project management is the art of creating order from chaos."`,
				Scenario: "pm",
			},
		},
		Entry{
			Department: Department{ID: "pr", Name: "Public Relation", Tagline: "Public Relations"},
			Descriptor: Descriptor{
				Kind:     SpinStory,
				Accent:   "#c084fc",
				Title:    "SPIN THE STORY",
				Subtitle: "Craft the perfect headline",
				Icon:     "megaphone",
				Quote:    `"Everything you do or say is public relations."`,
			},
		},
		Entry{
			Department: Department{ID: "fr", Name: "Fundraising", Tagline: "Fundraising"},
			Descriptor: Descriptor{
				Kind:     OneMinutePitchBuilder,
				Accent:   "#4ade80",
				Title:    "PITCH IT FAST",
				Subtitle: "Build the ultimate funding pitch in a minute",
				Icon:     "coins",
				Quote:    `"No one has ever become poor by giving."`,
			},
		},
		Entry{
			Department: Department{ID: "logistics", Name: "Logistics", Tagline: "Operations"},
			Descriptor: Descriptor{
				Kind:     SequenceOrdering,
				Accent:   "#fb923c",
				Title:    "SUPPLY CHAIN SHUFFLE",
				Subtitle: "Optimize the delivery route",
				Icon:     "truck",
				Quote:    `"Amateurs talk strategy. Professionals talk logistics."`,
				Scenario: "logistics",
			},
		},
		Entry{
			Department: Department{ID: "er", Name: "Organization", Tagline: "Organization"},
			Descriptor: Descriptor{
				Kind:     RingCipher,
				Accent:   "#2dd4bf",
				Title:    "PARTNER LINK",
				Subtitle: "Align the external nodes",
				Icon:     "calendar",
				Quote:    `"Coming together is a beginning, working together is success."`,
			},
		},
		Entry{
			Department: Department{ID: "mkt", Name: "Marketing", Tagline: "Marketing"},
			Descriptor: Descriptor{
				Kind:     VisualAnalysis,
				Accent:   "#f472b6",
				Title:    "TREND SPOTTER",
				Subtitle: "Read the visual, find the message",
				Icon:     "lightbulb",
				Quote:    `"Marketing is no longer about the stuff that you make, but about the stories you tell."`,
			},
		},
		Entry{
			Department: Department{ID: "mm", Name: "Multi-media", Tagline: "Multi-media"},
			Descriptor: Descriptor{
				Kind:     RhythmTimingLock,
				Accent:   "#818cf8",
				Title:    "FRAME SYNC",
				Subtitle: "Align the render buffer",
				Icon:     "video",
				Quote:    `"Design is not just what it looks like and feels like. Design is how it works."`,
			},
		},
		Entry{
			Department: Department{ID: "pres", Name: "Presentation", Tagline: "Presentation"},
			Descriptor: Descriptor{
				Kind:     CreativeConstraintWriter,
				Accent:   "#22d3ee",
				Title:    "VOICE FLOW",
				Subtitle: "Say it within the rules",
				Icon:     "mic",
				Quote:    `"The art of communication is the language of leadership."`,
			},
		},
	)
}
