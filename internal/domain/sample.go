package domain

// SamplePortfolio returns a small document to start from
func SamplePortfolio() *Portfolio {
	p := NewPortfolio()
	p.Personal = Personal{
		Name:         "Your Name",
		Profession:   "Software Developer",
		Tagline:      "Web and mobile applications",
		Background:   "Computer Science",
		Bio:          "Hello! I'm a developer who enjoys building tools people actually use.",
		Logo:         "Image/logo.png",
		ProfileImage: "Image/profile.jpg",
		Email:        "you@example.com",
		GitHub:       "your-github",
		LinkedIn:     "your-linkedin",
		SiteURL:      "https://example.com",
		Description:  "Professional portfolio.",
		Keywords:     "portfolio, developer, projects",
	}

	p.Categories = []Category{
		{
			Key:         "web",
			Title:       "Web Development",
			Icon:        "🌐",
			Description: "Sites and web applications",
			Projects: []Project{
				{
					ID:          "web-portfolio",
					Title:       "Personal Portfolio Website",
					Subtitle:    "Responsive portfolio showcasing skills and projects",
					Description: "A responsive portfolio built from a single content document.",
					Icon:        "Image/logo.png",
					TechStack:   []string{"HTML5", "CSS3", "JavaScript"},
					Links: []Link{
						{Type: LinkGitHub, URL: "https://github.com/your-github/portfolio"},
						{Type: LinkDemo, URL: "https://example.com"},
					},
					Sections: []Section{
						NewSection(Heading{Level: 2, Text: "Overview"}),
						NewSection(Text{Text: "Content lives in one document and is rendered into every page. Source on [GitHub](https://github.com/your-github/portfolio).", FontSize: FontMedium}),
						NewSection(List{Items: []ListItem{
							{Text: "Pages", Level: 0},
							{Text: "Index", Level: 1},
							{Text: "Journey", Level: 1},
							{Text: "Dashboard", Level: 0},
						}}),
					},
				},
				{
					ID:          "task-manager",
					Title:       "Task Management Application",
					Subtitle:    "Collaborative task tracker",
					Description: "A task manager with workspaces, assignments and notifications.",
					Icon:        "Image/logo.png",
					TechStack:   []string{"React", "TypeScript", "Node.js", "PostgreSQL"},
					Links: []Link{
						{Type: LinkGitHub, URL: "https://github.com/your-github/task-manager"},
					},
				},
			},
		},
		{
			Key:         "mobile",
			Title:       "Mobile Apps",
			Icon:        "📱",
			Description: "Cross-platform applications",
			Projects: []Project{
				{
					ID:          "fitness-tracker",
					Title:       "Fitness Tracking App",
					Subtitle:    "Cross-platform workout tracker",
					Description: "Workout logging, progress charts and custom plans.",
					Icon:        "Image/logo.png",
					TechStack:   []string{"React Native", "Expo", "Firebase"},
					Sections: []Section{
						NewSection(Code{Language: "javascript", Text: "const workout = logSet('squat', 5, 100);"}),
						NewSection(Video{Platform: PlatformYouTube, Src: "https://youtu.be/dQw4w9WgXcQ"}),
					},
				},
			},
		},
	}
	for ci := range p.Categories {
		for pi := range p.Categories[ci].Projects {
			Renumber(p.Categories[ci].Projects[pi].Sections)
		}
	}

	p.Timeline = []TimelineEvent{
		{Date: "2015 - 2018", Title: "High School", Category: "education", Description: "Coding clubs and competitions.", Icon: "📚"},
		{Date: "2018 - 2022", Title: "Bachelor's Degree in Computer Science", Category: "education", Description: "Data structures, algorithms and software engineering.", Icon: "🎓"},
		{Date: "2020", Title: "First Major Project", Category: "project", Description: "A full-stack task manager.", Icon: "💻", ProjectID: "task-manager"},
		{Date: "2022", Title: "Portfolio Launch", Category: "project", Description: "Launched this site.", Icon: "🎨", ProjectID: "web-portfolio", Media: &Media{Type: "image", URL: "Image/logo.png"}},
		{Date: "2024", Title: "Certifications", Category: "achievement", Description: "Cloud and frontend certifications.", Icon: "🏆"},
	}
	return p
}
