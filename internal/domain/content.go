package domain

import "strings"

// Platform is the social network (or pseudo-platform) content is written for.
type Platform string

const (
	PlatformGeneral   Platform = "general"
	PlatformTwitter   Platform = "twitter"
	PlatformFacebook  Platform = "facebook"
	PlatformInstagram Platform = "instagram"
	PlatformWhatsApp  Platform = "whatsapp"
	PlatformWebSearch Platform = "web-search"
	PlatformCV        Platform = "cv"
)

type platformInfo struct {
	label        string
	instructions string
}

var platformCatalog = map[Platform]platformInfo{
	PlatformGeneral: {
		label:        "عام",
		instructions: "",
	},
	PlatformTwitter: {
		label:        "تويتر",
		instructions: "اكتب محتوى موجزاً لا يتجاوز 280 حرفاً مناسباً لتويتر مع وسوم مناسبة.",
	},
	PlatformFacebook: {
		label:        "فيسبوك",
		instructions: "اكتب منشوراً جذاباً لفيسبوك يشجع على التفاعل والتعليق.",
	},
	PlatformInstagram: {
		label:        "انستغرام",
		instructions: "اكتب وصفاً لصورة على انستغرام بأسلوب بصري مع وسوم ورموز تعبيرية مناسبة.",
	},
	PlatformWhatsApp: {
		label:        "واتساب",
		instructions: "اكتب رسالة قصيرة وودية مناسبة للمشاركة عبر واتساب.",
	},
	PlatformWebSearch: {
		label:        "بحث على الإنترنت",
		instructions: "اعتمد على أحدث المعلومات المتاحة واذكر المصادر عند الإمكان.",
	},
	PlatformCV: {
		label:        "سيرة ذاتية",
		instructions: "اكتب بأسلوب مهني منظم مناسب للسير الذاتية مع عناوين واضحة.",
	},
}

// Platforms lists the supported platforms in display order.
func Platforms() []Platform {
	return []Platform{
		PlatformGeneral, PlatformTwitter, PlatformFacebook, PlatformInstagram,
		PlatformWhatsApp, PlatformWebSearch, PlatformCV,
	}
}

// Label returns the Arabic display name.
func (p Platform) Label() string {
	return platformCatalog[p].label
}

// Instructions returns the prompt fragment appended for this platform.
func (p Platform) Instructions() string {
	return platformCatalog[p].instructions
}

// ParsePlatform accepts either the slug or the Arabic label.
func ParsePlatform(raw string) (Platform, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return PlatformGeneral, true
	}
	if _, ok := platformCatalog[Platform(strings.ToLower(raw))]; ok {
		return Platform(strings.ToLower(raw)), true
	}
	for p, info := range platformCatalog {
		if info.label == raw {
			return p, true
		}
	}
	return "", false
}

// ContentType is the tone or purpose of generated content.
type ContentType string

const (
	ContentGeneral       ContentType = "general"
	ContentMarketing     ContentType = "marketing"
	ContentMotivational  ContentType = "motivational"
	ContentEducational   ContentType = "educational"
	ContentNews          ContentType = "news"
	ContentEntertainment ContentType = "entertainment"
	ContentCV            ContentType = "cv"
)

var contentTypeCatalog = map[ContentType]platformInfo{
	ContentGeneral:       {label: "عام"},
	ContentMarketing:     {label: "تسويقي", instructions: "ركز على إبراز الفوائد وأضف دعوة واضحة لاتخاذ إجراء."},
	ContentMotivational:  {label: "تحفيزي", instructions: "استخدم لغة إيجابية ملهمة تحفز القارئ."},
	ContentEducational:   {label: "تعليمي", instructions: "اشرح الفكرة بتسلسل واضح مع أمثلة مبسطة."},
	ContentNews:          {label: "إخباري", instructions: "التزم بالحياد والدقة واذكر الحقائق الأساسية أولاً."},
	ContentEntertainment: {label: "ترفيهي", instructions: "استخدم أسلوباً خفيفاً ممتعاً مع لمسة من الفكاهة."},
	ContentCV:            {label: "سيرة ذاتية", instructions: "نظم المحتوى في أقسام: الملخص، الخبرات، المهارات، التعليم."},
}

// ContentTypes lists the supported content types in display order.
func ContentTypes() []ContentType {
	return []ContentType{
		ContentGeneral, ContentMarketing, ContentMotivational, ContentEducational,
		ContentNews, ContentEntertainment, ContentCV,
	}
}

func (c ContentType) Label() string {
	return contentTypeCatalog[c].label
}

func (c ContentType) Instructions() string {
	return contentTypeCatalog[c].instructions
}

// ParseContentType accepts either the slug or the Arabic label.
func ParseContentType(raw string) (ContentType, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ContentGeneral, true
	}
	if _, ok := contentTypeCatalog[ContentType(strings.ToLower(raw))]; ok {
		return ContentType(strings.ToLower(raw)), true
	}
	for c, info := range contentTypeCatalog {
		if info.label == raw {
			return c, true
		}
	}
	return "", false
}

// GenerateRequest asks a content provider for text.
type GenerateRequest struct {
	Prompt        string
	Platform      Platform
	ContentType   ContentType
	ModelOverride string
	// Instructions is appended verbatim after the platform and content type
	// instructions.
	Instructions string
}

// GenerateResponse is the content variant of the assistant response.
type GenerateResponse struct {
	Response  string       `json:"response"`
	Stats     ContentStats `json:"stats"`
	Model     string       `json:"model,omitempty"`
	FromCache bool         `json:"fromCache,omitempty"`
}
