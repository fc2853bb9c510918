package registry

// Feature flag keys.
const (
	KeyEnableAdBlock      = "enableAdBlock"
	KeyUpgradeThumbnails  = "upgradeThumbnails"
	KeyHideLogo           = "hideLogo"
	KeyRemoveShorts       = "removeShorts"
	KeyEnableSponsorBlock = "enableSponsorBlock"

	KeySponsorBlockSponsor       = "enableSponsorBlockSponsor"
	KeySponsorBlockIntro         = "enableSponsorBlockIntro"
	KeySponsorBlockOutro         = "enableSponsorBlockOutro"
	KeySponsorBlockInteraction   = "enableSponsorBlockInteraction"
	KeySponsorBlockSelfPromo     = "enableSponsorBlockSelfPromo"
	KeySponsorBlockMusicOfftopic = "enableSponsorBlockMusicOfftopic"
)

// Presentation and remote binding keys.
const (
	KeyUITitle                = "ui.title"
	KeyUIAccent               = "ui.accent"
	KeyUIHintDelay            = "ui.hintDelay"
	KeyUINotificationDuration = "ui.notificationDuration"

	KeyRemoteRed    = "remote.keys.red"
	KeyRemoteGreen  = "remote.keys.green"
	KeyRemoteYellow = "remote.keys.yellow"
	KeyRemoteBlue   = "remote.keys.blue"
)

// hexColorPattern matches #rgb and #rrggbb.
const hexColorPattern = `^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`

// RegisterDefaults registers all built-in tvpanel settings.
func (r *Registry) RegisterDefaults() {
	general := []Setting{
		{Path: KeyEnableAdBlock, Default: true, Description: "Enable AdBlocking"},
		{Path: KeyUpgradeThumbnails, Default: false, Description: "Upgrade thumbnail quality"},
		{Path: KeyHideLogo, Default: false, Description: "Hide logo"},
		{Path: KeyRemoveShorts, Default: false, Description: "Remove Shorts from subscriptions"},
		{Path: KeyEnableSponsorBlock, Default: true, Description: "Enable SponsorBlock"},
	}
	for _, s := range general {
		s.Type = TypeBool
		s.Group = GroupGeneral
		r.MustRegister(s)
	}

	sponsor := []Setting{
		{Path: KeySponsorBlockSponsor, Default: true, Description: "Skip Sponsor Segments"},
		{Path: KeySponsorBlockIntro, Default: true, Description: "Skip Intro Segments"},
		{Path: KeySponsorBlockOutro, Default: true, Description: "Skip Outro Segments"},
		{Path: KeySponsorBlockInteraction, Default: true, Description: "Skip Interaction Reminder Segments"},
		{Path: KeySponsorBlockSelfPromo, Default: true, Description: "Skip Self Promotion Segments"},
		{Path: KeySponsorBlockMusicOfftopic, Default: true, Description: "Skip Music and Off-topic Segments"},
	}
	for _, s := range sponsor {
		s.Type = TypeBool
		s.Group = GroupSponsor
		r.MustRegister(s)
	}

	r.MustRegister(Setting{
		Path:        KeyUITitle,
		Type:        TypeString,
		Default:     "TV Extended",
		Description: "Settings panel heading",
		Group:       GroupUI,
	})
	r.MustRegister(Setting{
		Path:        KeyUIAccent,
		Type:        TypeString,
		Default:     "#3ea6ff",
		Description: "Accent colour of the focused control",
		Group:       GroupUI,
		Pattern:     hexColorPattern,
	})
	r.MustRegister(Setting{
		Path:        KeyUIHintDelay,
		Type:        TypeDuration,
		Default:     "2s",
		Description: "Delay before the startup hint is shown",
		Group:       GroupUI,
	})
	r.MustRegister(Setting{
		Path:        KeyUINotificationDuration,
		Type:        TypeDuration,
		Default:     "3s",
		Description: "How long notifications stay on screen",
		Group:       GroupUI,
	})

	remote := []Setting{
		{Path: KeyRemoteRed, Default: "r", Description: "Terminal key for the red button"},
		{Path: KeyRemoteGreen, Default: "g", Description: "Terminal key for the green button"},
		{Path: KeyRemoteYellow, Default: "y", Description: "Terminal key for the yellow button"},
		{Path: KeyRemoteBlue, Default: "b", Description: "Terminal key for the blue button"},
	}
	for _, s := range remote {
		s.Type = TypeString
		s.Group = GroupRemote
		s.Pattern = `^.$`
		r.MustRegister(s)
	}
}
