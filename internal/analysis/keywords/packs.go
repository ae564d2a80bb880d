package keywords

import "github.com/fairyhunter13/cv-feedback/internal/domain"

func kw(key, label string, tier domain.Tier, patterns []string, synonyms ...string) domain.KeywordDefinition {
	return domain.KeywordDefinition{Key: key, Label: label, Tier: tier, Patterns: patterns, Synonyms: synonyms}
}

// Shared definitions reused across packs.
var (
	kwGit = kw("git", "Git / version control", domain.TierNice,
		[]string{`\bgit\b`, `\bgithub\b`, `\bgitlab\b`, `\bbitbucket\b`})
	kwCICD = kw("ci_cd", "CI/CD", domain.TierNice,
		[]string{`\bci\s*/\s*cd\b`, `\bcontinuous (integration|delivery|deployment)\b`, `\bgithub actions\b`, `\bjenkins\b`, `\bcircleci\b`, `\bgitlab ci\b`})
	kwRESTAPI = kw("rest_api", "REST / API integration", domain.TierStrong,
		[]string{`\brest(ful)?\b`, `\bapis?\b`, `\bgraphql\b`}, "http client")
	kwHTMLCSS = kw("html_css", "HTML / CSS", domain.TierCritical,
		[]string{`\bhtml5?\b`, `\bcss3?\b`, `\bscss\b`, `\bsass\b`, `\btailwind\b`})
	kwResponsive = kw("responsive", "Responsive design", domain.TierStrong,
		[]string{`\bresponsive\b`, `\bmobile[- ]first\b`, `\bcross[- ]browser\b`})
	kwA11y = kw("accessibility", "Accessibility", domain.TierNice,
		[]string{`\baccessibility\b`, `\ba11y\b`, `\bwcag\b`, `\baria\b`})
	kwDocker = kw("containers", "Docker / containers", domain.TierStrong,
		[]string{`\bdocker\b`, `\bkubernetes\b`, `\bk8s\b`, `\bcontaineri[sz]ed\b`, `\bcontainers?\b`})
	kwCloud = kw("cloud", "Cloud platforms", domain.TierStrong,
		[]string{`\baws\b`, `\bgcp\b`, `\bazure\b`, `\bgoogle cloud\b`, `\blambda\b`})
	kwMonitoring = kw("monitoring", "Monitoring / observability", domain.TierNice,
		[]string{`\bmonitoring\b`, `\bobservability\b`, `\bprometheus\b`, `\bgrafana\b`, `\bdatadog\b`, `\bsentry\b`})
)

func builtinPacks() []Pack {
	return []Pack{
		{
			ID:      "software_engineer",
			Label:   "Software Engineer",
			Aliases: []string{"general", "generic", "swe", "software engineer", "developer"},
			Keywords: []domain.KeywordDefinition{
				kw("programming_language", "Programming language", domain.TierCritical,
					[]string{`\bgolang\b`, `\bpython\b`, `\bjava\b`, `\bjavascript\b`, `\btypescript\b`, `\brust\b`, `\bkotlin\b`, `\bruby\b`, `\bscala\b`},
					"c++", "c#"),
				kw("testing", "Automated testing", domain.TierCritical,
					[]string{`\bunit tests?\b`, `\bintegration tests?\b`, `\btesting\b`, `\btdd\b`, `\bjest\b`, `\bpytest\b`, `\bjunit\b`}),
				kw("apis", "APIs", domain.TierCritical,
					[]string{`\brest(ful)?\b`, `\bapis?\b`, `\bgraphql\b`, `\bgrpc\b`}),
				kw("databases", "Databases / SQL", domain.TierStrong,
					[]string{`\bsql\b`, `\bpostgres(ql)?\b`, `\bmysql\b`, `\bmongodb\b`, `\bredis\b`, `\bdynamodb\b`, `\bdatabases?\b`}),
				kw("system_design", "System design", domain.TierStrong,
					[]string{`\bsystem design\b`, `\barchitecture\b`, `\bmicroservices?\b`, `\bdistributed systems?\b`}),
				kwDocker,
				kwCloud,
				kw("ci_cd", "CI/CD", domain.TierStrong, kwCICD.Patterns),
				kwGit,
				kw("code_review", "Code review", domain.TierNice,
					[]string{`\bcode reviews?\b`, `\bpull requests?\b`, `\bpeer reviews?\b`}),
				kw("agile", "Agile delivery", domain.TierNice,
					[]string{`\bagile\b`, `\bscrum\b`, `\bkanban\b`, `\bsprints?\b`}),
				kwMonitoring,
				kw("performance", "Performance / scalability", domain.TierNice,
					[]string{`\bperformance\b`, `\blatency\b`, `\bscalab(le|ility)\b`, `\boptimi[sz](ed|ation|ing)\b`}),
			},
		},
		{
			ID:      "frontend_angular",
			Label:   "Angular Frontend Developer",
			Aliases: []string{"angular", "angular developer", "frontend angular"},
			Keywords: []domain.KeywordDefinition{
				kw("angular", "Angular", domain.TierCritical,
					[]string{`\bangular(\s*\d+)?\b`, `\bangularjs\b`}),
				kw("typescript", "TypeScript", domain.TierCritical,
					[]string{`\btypescript\b`}),
				kw("rxjs", "RxJS / reactive programming", domain.TierCritical,
					[]string{`\brxjs\b`, `\bobservables?\b`, `\breactive programming\b`}),
				kwHTMLCSS,
				kw("state_management", "State management (NgRx)", domain.TierStrong,
					[]string{`\bngrx\b`, `\bngxs\b`, `\bakita\b`, `\bstate management\b`, `\bsignals\b`}),
				kw("frontend_testing", "Frontend testing", domain.TierStrong,
					[]string{`\bjasmine\b`, `\bkarma\b`, `\bjest\b`, `\bcypress\b`, `\bplaywright\b`, `\bunit tests?\b`, `\be2e\b`}),
				kwRESTAPI,
				kwResponsive,
				kw("component_library", "Component libraries", domain.TierNice,
					[]string{`\bangular material\b`, `\bprimeng\b`, `\bcomponent librar(y|ies)\b`, `\bdesign system\b`}),
				kw("frontend_performance", "Frontend performance", domain.TierNice,
					[]string{`\blazy[- ]load(ing|ed)?\b`, `\bchange detection\b`, `\bonpush\b`, `\bbundle size\b`, `\blighthouse\b`, `\bcore web vitals\b`}),
				kwA11y,
				kwGit,
				kwCICD,
			},
		},
		{
			ID:      "frontend_react",
			Label:   "React Frontend Developer",
			Aliases: []string{"react", "react developer", "frontend react", "frontend"},
			Keywords: []domain.KeywordDefinition{
				kw("react", "React", domain.TierCritical,
					[]string{`\breact(\.js|js)?\b`},
					"react hooks"),
				kw("javascript_typescript", "JavaScript / TypeScript", domain.TierCritical,
					[]string{`\bjavascript\b`, `\btypescript\b`, `\bes6\b`, `\besnext\b`}),
				kwHTMLCSS,
				kw("state_management", "State management", domain.TierStrong,
					[]string{`\bredux\b`, `\bzustand\b`, `\bmobx\b`, `\brecoil\b`, `\bcontext api\b`, `\bstate management\b`}),
				kw("nextjs", "Next.js / SSR", domain.TierStrong,
					[]string{`\bnext(\.js|js)\b`, `\bserver[- ]side rendering\b`, `\bssr\b`, `\bremix\b`}),
				kw("frontend_testing", "Frontend testing", domain.TierStrong,
					[]string{`\bjest\b`, `\breact testing library\b`, `\bvitest\b`, `\bcypress\b`, `\bplaywright\b`, `\bunit tests?\b`}),
				kwRESTAPI,
				kwResponsive,
				kw("build_tooling", "Build tooling", domain.TierNice,
					[]string{`\bwebpack\b`, `\bvite\b`, `\bbabel\b`, `\besbuild\b`, `\brollup\b`}),
				kw("storybook", "Storybook / design systems", domain.TierNice,
					[]string{`\bstorybook\b`, `\bdesign system\b`, `\bcomponent librar(y|ies)\b`}),
				kw("frontend_performance", "Frontend performance", domain.TierNice,
					[]string{`\blazy[- ]load(ing|ed)?\b`, `\bmemoi[sz]ation\b`, `\bbundle size\b`, `\blighthouse\b`, `\bcore web vitals\b`}),
				kwA11y,
				kwGit,
			},
		},
		{
			ID:      "backend_node",
			Label:   "Node.js Backend Developer",
			Aliases: []string{"node", "nodejs", "node.js", "backend", "backend node"},
			Keywords: []domain.KeywordDefinition{
				kw("nodejs", "Node.js", domain.TierCritical,
					[]string{`\bnode(\.js|js)?\b`}),
				kw("javascript_typescript", "JavaScript / TypeScript", domain.TierCritical,
					[]string{`\bjavascript\b`, `\btypescript\b`}),
				kw("rest_api", "REST / API design", domain.TierCritical,
					[]string{`\brest(ful)?\b`, `\bapis?\b`, `\bgraphql\b`, `\bopenapi\b`, `\bswagger\b`}),
				kw("databases", "Databases", domain.TierCritical,
					[]string{`\bsql\b`, `\bpostgres(ql)?\b`, `\bmysql\b`, `\bmongodb\b`, `\bmongoose\b`, `\bprisma\b`, `\bsequelize\b`, `\btypeorm\b`}),
				kw("node_framework", "Node framework", domain.TierStrong,
					[]string{`\bexpress(\.js|js)?\b`, `\bnestjs\b`, `\bnest\.js\b`, `\bfastify\b`, `\bkoa\b`}),
				kw("backend_testing", "Backend testing", domain.TierStrong,
					[]string{`\bjest\b`, `\bmocha\b`, `\bchai\b`, `\bsupertest\b`, `\bunit tests?\b`, `\bintegration tests?\b`}),
				kwDocker,
				kwCloud,
				kw("messaging", "Messaging / queues", domain.TierStrong,
					[]string{`\bkafka\b`, `\brabbitmq\b`, `\bsqs\b`, `\bpub\s*/?\s*sub\b`, `\bmessage queues?\b`, `\bbullmq\b`}),
				kw("auth", "Authentication / authorization", domain.TierStrong,
					[]string{`\boauth2?\b`, `\bjwt\b`, `\bauthentication\b`, `\bauthori[sz]ation\b`}),
				kw("microservices", "Microservices", domain.TierNice,
					[]string{`\bmicroservices?\b`, `\bevent[- ]driven\b`, `\bdistributed systems?\b`}),
				kw("caching", "Caching", domain.TierNice,
					[]string{`\bredis\b`, `\bcach(e|ing)\b`, `\bmemcached\b`}),
				kwCICD,
				kwMonitoring,
				kwGit,
			},
		},
	}
}
