package curriculum

import (
	"regexp"
	"sort"
	"strings"
)

// Static dictionaries. Everything in this file is built once at package
// initialization and only read afterwards, so parsers may run concurrently.

// sectionTitles are phrases that look like a shouting header rather than a
// person's name when they appear on the first line.
var sectionTitles = []string{
	"desenvolvedor full stack sênior",
	"especialista",
	"arquiteto de soluções",
	"resumo profissional",
	"habilidades",
	"experiência profissional",
	"contato",
	"curriculum vitae",
	"currículo",
}

// Section header keywords, matched case-insensitively.
var (
	summaryHeaders = []string{
		`resumo profissional:`, `professional summary:`, `sumário profissional:`,
	}
	summaryTerminators = []string{
		`habilidades:`, `skills:`, `experiência profissional:`, `work experience:`,
		`educação:`, `education:`, `certifica[çc][oõ]es:`, `certifications:`,
		`idiomas:`, `languages:`, `projetos:`, `projects:`, `portfólio:`,
	}

	experienceHeaders = []string{
		`experiencia profissional:`, `experiência profissional:`, `work experience:`, `employment history:`,
	}
	experienceTerminators = []string{
		`certifica[çc][oõ]es:`, `certifications:`, `habilidades:`, `skills:`,
		`educação:`, `education:`, `idiomas:`, `languages:`, `projetos:`,
		`projects:`, `portfólio:`, `resumo profissional:`,
	}

	certificationHeaders = []string{
		`certifica[çc][oõ]es:`, `certifications:`, `certificados e cursos:`, `certificações e cursos:`,
	}
	certificationTerminators = []string{
		`idiomas:`, `languages:`, `projetos:`, `projects:`, `portfólio:`, `habilidades:`,
	}

	skillsHeaders = []string{
		`habilidades:`, `skills:`, `habilidades t[ée]cnicas`, `competencias`, `competências`,
	}
	skillsTerminators = []string{
		`experiencia`, `experiência`, `formacao`, `formação`, `certifica[çc][oõ]es`,
		`idiomas`, `contato`, `projetos`, `portfólio`,
	}
)

// roleKeywords mark a line as a job title.
var roleKeywords = []string{
	"desenvolvedor", "desenvolvedora", "arquiteto", "arquiteta", "analista",
	"engenheiro", "engenheira", "consultor", "consultora", "sócio", "sócia",
	"fullstack", "full stack", "front-end", "back-end", "devops",
	"sênior", "senior", "developer", "engineer", "architect", "consultant",
}

// corporateSuffixes may close a company header line ("Acme, Ltda").
var corporateSuffixes = []string{
	"SA", "Ltda", "ME", "Eireli", "Software", "Innovation", "Sistemas",
	"Informática", "Brasil", "Portugal",
}

// Month names and abbreviations, Portuguese first.
var monthNames = []string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho", "julho",
	"agosto", "setembro", "outubro", "novembro", "dezembro",
	"january", "february", "march", "april", "may", "june", "july",
	"august", "september", "october", "november", "december",
	"jan", "fev", "feb", "mar", "abr", "apr", "mai", "jun", "jul", "ago",
	"aug", "set", "sep", "out", "oct", "nov", "dez", "dec",
}

// workModes are location values on their own.
var workModes = []string{"remoto", "presencial", "híbrido", "hibrido", "remote", "hybrid", "on-site", "onsite"}

// aliasRule rewrites one raw spelling of a technology to its display form.
type aliasRule struct {
	pattern   string
	canonical string
	// anywhere rules carry punctuation and match inside other tokens;
	// the rest only match on word boundaries.
	anywhere bool
}

// aliasTable is sorted longest pattern first at init.
var aliasTable = []aliasRule{
	{"c#", "C#", true},
	{".net", ".NET", true},
	{"vb.net", "VB.NET", true},
	{"asp.net", "ASP.NET", true},
	{"asp.net mvc", "ASP.NET MVC", true},
	{"asp.net core mvc", "ASP.NET MVC", true},
	{"asp.net webforms", "ASP.NET WebForms", true},
	{"asp.net core webforms", "ASP.NET WebForms", true},
	{"asp.net core", "ASP.NET Core", true},
	{".net core", ".NET Core", true},
	{".net mvc", "ASP.NET MVC", true},
	{".net webforms", "ASP.NET WebForms", true},
	{"asp net", "ASP.NET", false},
	{"asp-net", "ASP.NET", false},
	{"aspnet", "ASP.NET", false},
	{"vb", "VB.NET", false},
	{"visual studio", "Visual Studio", false},
	{"sql server", "SQL Server", false},
	{"t-sql", "T-SQL", false},
	{"pl/sql", "PL/SQL", false},
	{"psql", "PSQL", false},
	{"stored procedures", "Stored Procedures", false},
	{"windows services", "Windows Services", false},
	{"wcf services", "WCF Services", false},
	{"ms integration services", "MS Integration Services", false},
	{"devops", "DevOps", false},
	{"php", "PHP", false},
	{"cloud computing", "Cloud Computing", false},
	{"firebase", "Firebase", false},
	{"amazon web services (aws)", "Amazon Web Services (AWS)", false},
	{"aws", "AWS", false},
	{"microsoft azure", "Microsoft Azure", false},
	{"azure", "Azure", false},
	{"nestjs", "NestJs", false},
	{"nodejs", "NodeJs", false},
	{"reactjs", "ReactJs", false},
	{"angular", "Angular", false},
	{"ionic", "Ionic", false},
	{"delphi", "Delphi", false},
	{"xamarin", "Xamarin", false},
}

// aliasPattern is one alternation over the whole alias table. Go regexps
// prefer the leftmost alternative at a given position, so listing the
// patterns longest first makes "asp.net mvc" win over "asp.net" and ".net".
var (
	aliasPattern   *regexp.Regexp
	aliasCanonical map[string]string
)

func init() {
	sort.SliceStable(aliasTable, func(i, j int) bool {
		return len(aliasTable[i].pattern) > len(aliasTable[j].pattern)
	})

	alternatives := make([]string, 0, len(aliasTable))
	aliasCanonical = make(map[string]string, len(aliasTable))
	for _, rule := range aliasTable {
		quoted := regexp.QuoteMeta(rule.pattern)
		if !rule.anywhere {
			// \b only sits next to word characters; a pattern that starts or
			// ends with punctuation ("amazon web services (aws)") gets the
			// boundary on its word side only.
			if isWordByte(rule.pattern[0]) {
				quoted = `\b` + quoted
			}
			if isWordByte(rule.pattern[len(rule.pattern)-1]) {
				quoted += `\b`
			}
		}
		alternatives = append(alternatives, quoted)
		aliasCanonical[rule.pattern] = rule.canonical
	}
	aliasPattern = regexp.MustCompile(`(?i)` + strings.Join(alternatives, "|"))
}

func isWordByte(b byte) bool {
	return b == '_' || ('0' <= b && b <= '9') || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

// skillStopwords never stand alone as a skill.
var skillStopwords = toSet(
	"e", "ou", "de", "do", "da", "em", "para", "com", "sem", "d", "s", "l", "a", "o", "um", "uma", "no", "na", "os", "as",
	"ti", "api", "web", "app", "core", "mvc", "sql", "js", "ios", "android", "fullstack", "senior", "sênior",
	"development", "developer", "software", "system", "systems", "platform", "management", "service", "services", "tools",
	"frameworks", "linguagens", "bancos", "dados", "cloud", "computing", "integration", "process", "procedures", "studio",
	"visual", "ms", "microsoft", "amazon", "google", "oracle", "mysql", "postgres", "xp", "ci", "cd", "backend", "frontend",
	"experiência", "profissional", "consultor", "arquiteto", "devops", "specialista", "expert", "solution", "solutions",
	"desenvolvedor", "engenheiro", "engineer", "analista", "analysis", "programador", "programmer", "programing", "programação",
	"sólida", "atuação", "camadas", "amplo", "conhecimento", "histórico", "projetos", "grandes", "empresas", "setor", "focados",
	"proativo", "autodidata", "perfil", "generalista", "apto", "equipes", "ágeis", "ágil", "práticas", "entregas",
	"trabalho", "trabalhar", "webforms", "dot", "asp",
)

// skillArtifacts are leftovers of partially rewritten spellings.
var skillArtifacts = toSet("aspasp")

func toSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
