package session

// Profile is the signed-in player's identity and balances.
type Profile struct {
	UserID      string `json:"userId"`
	Username    string `json:"username"`
	AvatarIndex int    `json:"avatarIndex"`
	IsGuest     bool   `json:"isGuest"`
	Coins       int    `json:"coins"`
	Diamonds    int    `json:"diamonds"`
	AuthToken   string `json:"-"`
}

// ApplyFields are the caller-supplied fields of Apply. Nil strings are
// stored as empty.
type ApplyFields struct {
	UserID      *string
	Username    *string
	AvatarIndex int
	IsGuest     bool
	Coins       int
	Diamonds    int
	AuthToken   *string
}

// LoginResponse is the backend's login payload.
type LoginResponse struct {
	Success bool               `json:"success"`
	Data    *LoginResponseData `json:"data"`
}

type LoginResponseData struct {
	Username string  `json:"username"`
	UserID   string  `json:"user_id"`
	// Avatar is 1-based.
	Avatar   int     `json:"avatar"`
	IsGuest  bool    `json:"isGuest"`
	Coins    int     `json:"coins"`
	Diamonds int     `json:"diamonds"`
	JWTToken *string `json:"jwtToken"`
}

// ProfileKeys are the display keys owned by the game manager that the
// session writes through to.
type ProfileKeys struct {
	NameKey        string
	AvatarIndexKey string
}

var DefaultProfileKeys = ProfileKeys{
	NameKey:        "PLAYER_NAME",
	AvatarIndexKey: "PLAYER_AVATAR_INDEX",
}
