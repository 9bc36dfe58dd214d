package enums

import "fmt"

// SocialPlatform identifies a linked social media account.
type SocialPlatform string

const (
	SocialPlatformInstagram SocialPlatform = "instagram"
	SocialPlatformTikTok    SocialPlatform = "tiktok"
	SocialPlatformYouTube   SocialPlatform = "youtube"
	SocialPlatformTwitter   SocialPlatform = "twitter"
	SocialPlatformTwitch    SocialPlatform = "twitch"
)

var validSocialPlatforms = []SocialPlatform{
	SocialPlatformInstagram,
	SocialPlatformTikTok,
	SocialPlatformYouTube,
	SocialPlatformTwitter,
	SocialPlatformTwitch,
}

// String implements fmt.Stringer.
func (p SocialPlatform) String() string {
	return string(p)
}

// IsValid reports whether the value is known.
func (p SocialPlatform) IsValid() bool {
	for _, candidate := range validSocialPlatforms {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseSocialPlatform converts raw input into a SocialPlatform.
func ParseSocialPlatform(value string) (SocialPlatform, error) {
	for _, candidate := range validSocialPlatforms {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid social platform %q", value)
}
