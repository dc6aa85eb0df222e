package insight

import (
	"fmt"
	"strings"

	"github.com/moodk/moodk/internal/catalog"
	"github.com/moodk/moodk/internal/locale"
	"github.com/moodk/moodk/internal/metadata/tmdb"
)

const promptEN = `You are a witty, pop-culture-savvy film critic.
User Mood: %q.
Cultural interest: %q.
Time budget: %q.

Recommendation: %q.
Overview: %q.

Write a very short reasoning (max 2 sentences) in a punchy, persuasive style explaining why this is a perfect match.
Start with "Match score: 98%% because..." or something similar.
The tone should be professional yet entertaining. Response language must be English.`

const promptAR = `أنت ناقد سينمائي ذكي، مطلع على الثقافة الشعبية، وتتحدث بأسلوب مشوق.
المستخدم في حالة مزاجية: %q.
يريد شيئاً من ثقافة: %q.
لديه وقت لـ: %q.

قمنا بترشيح: %q.
نبذة عن العمل: %q.

اكتب سبباً قصيراً جداً (حد أقصى جملتين)، بأسلوب قوي ومقنع يشرح لماذا هذا العمل هو الخيار الأمثل.
ابدأ بـ "نسبة التطابق: 98%% لأن..." أو ما شابه.
يجب أن يكون النص باللغة العربية بلهجة نقدية ممتعة وغير مملة.`

// BuildPrompt renders the critic prompt for a matched title.
func BuildPrompt(item tmdb.ResultItem, criteria catalog.SelectionCriteria, lang locale.Language) string {
	tmpl := promptEN
	if lang == locale.Arabic {
		tmpl = promptAR
	}

	return strings.TrimSpace(fmt.Sprintf(tmpl,
		criteria.MoodLabel(),
		criteria.RegionLabel(),
		criteria.TimeLabel(),
		item.DisplayTitle(),
		item.Overview,
	))
}
