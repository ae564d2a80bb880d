package document

import (
	"regexp"

	"github.com/fairyhunter13/cv-feedback/internal/domain"
)

// headingPattern is one row of the heading table. Patterns are matched
// against the whole trimmed line; a trailing colon is allowed.
type headingPattern struct {
	section domain.Section
	re      *regexp.Regexp
}

func heading(section domain.Section, alternatives string) headingPattern {
	return headingPattern{
		section: section,
		re:      regexp.MustCompile(`(?i)^\s*(?:` + alternatives + `)\s*:?\s*$`),
	}
}

var headingTable = []headingPattern{
	heading(domain.SectionExperience, `(?:professional |work |relevant |employment |career )?(?:experience|history)|employment|work history|career history|professional background`),
	heading(domain.SectionEducation, `education(?: (?:and|&) (?:training|certifications?))?|academic background|qualifications|academics`),
	heading(domain.SectionSkills, `(?:technical |core |key |professional )?skills(?: (?:and|&) (?:tools|technologies))?|technical proficiencies|core competencies|competencies|tech(?:nology)? stack|technologies|tools(?: (?:and|&) technologies)?`),
	heading(domain.SectionProjects, `(?:personal |side |selected |key |academic )?projects|portfolio|open[- ]source(?: contributions)?`),
	heading(domain.SectionSummary, `(?:professional |career )?(?:summary|profile)|about(?: me)?|objective|career objective|overview`),
	heading(domain.SectionOther, `certifications?|licen[cs]es(?: (?:and|&) certifications)?|awards?(?: (?:and|&) honou?rs)?|honou?rs|languages|interests|hobbies|volunteer(?:ing| experience)?|publications|references|achievements|activities|courses|training`),
}

// skillsAlias matches a labelled skills line such as "Languages: Go, Python".
var skillsAlias = regexp.MustCompile(`(?i)^(?:technical skills|core skills|skills|programming languages|languages|technologies|tech stack|stack|tools|frameworks|libraries|databases|cloud|platforms|devops)\s*:\s*\S`)

// Summary alias hints.
var (
	summaryRoleHint           = regexp.MustCompile(`(?i)\b(?:engineer|developer|programmer|architect|designer|analyst|scientist|consultant)s?\b`)
	summarySpecializationHint = regexp.MustCompile(`(?i)\b(?:front[- ]?end|back[- ]?end|full[- ]?stack|software|web|mobile|cloud|data|devops|platform|infrastructure|angular|react|node(?:\.js)?|java|python|golang|typescript|javascript)\b`)
	summarySeniorityHint      = regexp.MustCompile(`(?i)\b(?:\d+\+?\s*(?:years?|yrs)|senior|junior|mid[- ]level|lead|principal|staff|experienced|seasoned)\b`)
	sentenceEnd               = regexp.MustCompile(`[.!?](?:\s|$)`)
)

// Contact patterns.
var (
	emailRe    = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phoneRe    = regexp.MustCompile(`\+?\d[\d\s().\-]{7,}\d`)
	linkedinRe = regexp.MustCompile(`(?i)linkedin\.com/in/|\blinkedin\b`)
	urlRe      = regexp.MustCompile(`(?i)\bhttps?://|\bwww\.|\b[a-z0-9-]+\.(?:com|io|dev|me|org)/`)
)

// DateFormat names a date notation.
type DateFormat string

// Date formats in specificity order.
const (
	DateMonthAbbrev DateFormat = "MMM YYYY"
	DateMonthFull   DateFormat = "Month YYYY"
	DateNumeric     DateFormat = "MM/YYYY"
	DateYear        DateFormat = "YYYY"
)

type datePattern struct {
	format DateFormat
	re     *regexp.Regexp
}

// dateTable is ordered from most to least specific; a bare year is only
// recorded when nothing more specific matched the same line.
var dateTable = []datePattern{
	{DateMonthAbbrev, regexp.MustCompile(`(?i)\b(?:jan|feb|mar|apr|jun|jul|aug|sep|sept|oct|nov|dec)\.?\s+(?:19|20)\d{2}\b`)},
	{DateMonthFull, regexp.MustCompile(`(?i)\b(?:january|february|march|april|june|july|august|september|october|november|december)\s+(?:19|20)\d{2}\b`)},
	{DateNumeric, regexp.MustCompile(`\b(?:0?[1-9]|1[0-2])\s*/\s*(?:19|20)\d{2}\b`)},
	{DateYear, regexp.MustCompile(`\b(?:19|20)\d{2}\b`)},
}

// mayDate is both "MMM" and "Month"; it suppresses the bare year without
// recording a format.
var mayDate = regexp.MustCompile(`(?i)\bmay\.?\s+(?:19|20)\d{2}\b`)

// Bullet content patterns.
var (
	yearRe    = regexp.MustCompile(`\b(?:0?[1-9]|1[0-2])\s*/\s*(?:19|20)\d{2}\b|\b(?:19|20)\d{2}\b`)
	metricRe  = regexp.MustCompile(`(?i)\d|[%$€£]|\b(?:doubled|tripled|halved|tenfold)\b`)
	outcomeRe = regexp.MustCompile(`(?i)\b(?:result(?:ed|ing) in|leading to|led to|so that|improv(?:ed|ing|es)|reduc(?:ed|ing|es)|increas(?:ed|ing|es)|decreas(?:ed|ing|es)|sav(?:ed|ing)|boost(?:ed|ing)|cut(?:ting)?|accelerat(?:ed|ing)|grew|growing|achiev(?:ed|ing)|enabl(?:ed|ing)|lower(?:ed|ing)|raising|raised|eliminat(?:ed|ing)|shorten(?:ed|ing))\b`)
	scopeRe   = regexp.MustCompile(`(?i)\b(?:\d[\d,.]*\+?\s*[km]?\s*(?:users|customers|clients|engineers|developers|people|services|teams|countries|markets|requests|transactions|stores|merchants)|team of|across|company[- ]wide|org(?:anization)?[- ]wide|enterprise|global(?:ly)?|millions?|thousands?|cross[- ]functional|end[- ]to[- ]end|multi[- ]region)\b`)
	weakRe    = regexp.MustCompile(`(?i)^(?:responsible for|responsibilities (?:include|included)|duties (?:include|included)|tasked with|in charge of|worked on|helped(?: to)?|assisted(?: in| with)?|involved in|participated in)\b`)
	pronounRe = regexp.MustCompile(`(?:^|[\s,;(])(?:I|I'm|I've|I'd|[Mm]e|[Mm]y|[Mm]yself)(?:[\s,;.:)!?]|$)`)
)

// actionVerbs are strong bullet openers.
var actionVerbs = toSet(
	"accelerated", "achieved", "added", "advised", "analyzed", "architected", "automated", "built",
	"championed", "coached", "collaborated", "configured", "consolidated", "coordinated", "created",
	"cut", "debugged", "decreased", "defined", "delivered", "deployed", "designed", "developed",
	"directed", "drove", "eliminated", "enabled", "engineered", "established", "expanded",
	"generated", "grew", "handled", "headed", "implemented", "improved", "increased", "initiated",
	"instrumented", "integrated", "introduced", "launched", "led", "maintained", "managed",
	"mentored", "migrated", "modernized", "monitored", "negotiated", "optimized", "optimised",
	"orchestrated", "organized", "overhauled", "owned", "pioneered", "planned", "prototyped",
	"published", "rebuilt", "reduced", "refactored", "released", "replaced", "resolved",
	"restructured", "revamped", "scaled", "secured", "shipped", "simplified", "spearheaded",
	"standardized", "streamlined", "supervised", "tested", "trained", "transformed", "upgraded",
	"wrote",
)

// stackContradiction is one row of the contradiction table: a stack acronym
// and a framework it excludes, plus phrases that legitimately explain both.
type stackContradiction struct {
	id         string
	left       *regexp.Regexp
	right      *regexp.Regexp
	exceptions *regexp.Regexp
}

var contradictionTable = []stackContradiction{
	{
		id:         "mern_vs_angular",
		left:       regexp.MustCompile(`\bMERN\b`),
		right:      regexp.MustCompile(`(?i)\bangular(?:js)?\b`),
		exceptions: regexp.MustCompile(`(?i)angular\s+(?:front[- ]?end|ui|client)[^.]{0,60}\bnode|migrat(?:ed|ing|ion)\s+(?:from|to)|rewr(?:ote|ite|iting|itten)\s+(?:from|in)|replac(?:ed|ing)|both\s+angular\s+and\s+react`),
	},
	{
		id:         "mean_vs_react",
		left:       regexp.MustCompile(`\bMEAN\b`),
		right:      regexp.MustCompile(`(?i)\breact(?:\.js|js)?\b`),
		exceptions: regexp.MustCompile(`(?i)react\s+(?:front[- ]?end|ui|client)[^.]{0,60}\bnode|migrat(?:ed|ing|ion)\s+(?:from|to)|rewr(?:ote|ite|iting|itten)\s+(?:from|in)|replac(?:ed|ing)|both\s+angular\s+and\s+react`),
	},
}

// tableRow flags lines that look like flattened table cells.
var tableRow = regexp.MustCompile(`\S\s+\|\s+\S.*\S\s+\|\s+\S`)

func toSet(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
