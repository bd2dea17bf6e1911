package usecase

import (
	"regexp"
	"strings"
)

// skillTerms maps a canonical skill name to the terms that indicate it.
// Order is the order skills are reported in.
var skillTerms = []struct {
	skill string
	terms []string
}{
	{"JavaScript", []string{"javascript"}},
	{"TypeScript", []string{"typescript"}},
	{"Python", []string{"python"}},
	{"Java", []string{"java"}},
	{"Go", []string{"golang"}},
	{"Rust", []string{"rust"}},
	{"C++", []string{"c++"}},
	{"C#", []string{"c#", ".net"}},
	{"Ruby", []string{"ruby", "rails"}},
	{"PHP", []string{"php"}},
	{"Kotlin", []string{"kotlin"}},
	{"Swift", []string{"swift"}},
	{"SQL", []string{"sql"}},
	{"PostgreSQL", []string{"postgresql", "postgres"}},
	{"MySQL", []string{"mysql"}},
	{"MongoDB", []string{"mongodb"}},
	{"Redis", []string{"redis"}},
	{"React", []string{"react", "react.js", "reactjs"}},
	{"Vue.js", []string{"vue", "vue.js", "vuejs", "nuxt"}},
	{"Angular", []string{"angular"}},
	{"Node.js", []string{"node.js", "nodejs"}},
	{"Django", []string{"django"}},
	{"Flask", []string{"flask"}},
	{"Spring Boot", []string{"spring boot"}},
	{"Docker", []string{"docker"}},
	{"Kubernetes", []string{"kubernetes", "k8s"}},
	{"AWS", []string{"aws", "amazon web services"}},
	{"Azure", []string{"azure"}},
	{"GCP", []string{"gcp", "google cloud"}},
	{"Terraform", []string{"terraform"}},
	{"GraphQL", []string{"graphql"}},
	{"Kafka", []string{"kafka"}},
	{"Git", []string{"git"}},
	{"Linux", []string{"linux"}},
	{"Machine Learning", []string{"machine learning"}},
	{"TensorFlow", []string{"tensorflow"}},
	{"PyTorch", []string{"pytorch"}},
	{"CI/CD", []string{"ci/cd"}},
}

type skillMatcher struct {
	skill string
	re    *regexp.Regexp
}

var skillMatchers = compileSkillMatchers()

func compileSkillMatchers() []skillMatcher {
	// a term must not be glued to letters, digits, '+' or '#'
	const edge = `[^\p{L}\p{N}+#]`
	out := make([]skillMatcher, 0, len(skillTerms))
	for _, st := range skillTerms {
		alts := make([]string, len(st.terms))
		for i, t := range st.terms {
			alts[i] = regexp.QuoteMeta(t)
		}
		pattern := `(?i)(?:^|` + edge + `)(?:` + strings.Join(alts, "|") + `)(?:$|` + edge + `)`
		out = append(out, skillMatcher{skill: st.skill, re: regexp.MustCompile(pattern)})
	}
	return out
}

// ExtractSkills returns the known skills mentioned in text, each once.
func ExtractSkills(text string) []string {
	skills := []string{}
	if strings.TrimSpace(text) == "" {
		return skills
	}
	for _, m := range skillMatchers {
		if m.re.MatchString(text) {
			skills = append(skills, m.skill)
		}
	}
	return skills
}
