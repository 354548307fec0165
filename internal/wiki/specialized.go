package wiki

import "strings"

// Wiki identifies a specialized knowledge base used instead of
// Wikipedia for niche custom categories.
type Wiki struct {
	Name    string
	BaseURL string
}

// specializedWikis maps lower-case keywords to their dedicated wikis.
// Matched case-insensitively as substrings of the category name, so
// "Star Wars Prequels" hits the "star wars" entry.
var specializedWikis = map[string]Wiki{
	"star wars":         {Name: "Wookieepedia", BaseURL: "https://starwars.fandom.com/wiki/"},
	"harry potter":      {Name: "Harry Potter Wiki", BaseURL: "https://harrypotter.fandom.com/wiki/"},
	"pokemon":           {Name: "Bulbapedia", BaseURL: "https://bulbapedia.bulbagarden.net/wiki/"},
	"pokémon":           {Name: "Bulbapedia", BaseURL: "https://bulbapedia.bulbagarden.net/wiki/"},
	"star trek":         {Name: "Memory Alpha", BaseURL: "https://memory-alpha.fandom.com/wiki/"},
	"lord of the rings": {Name: "Tolkien Gateway", BaseURL: "https://tolkiengateway.net/wiki/"},
	"tolkien":           {Name: "Tolkien Gateway", BaseURL: "https://tolkiengateway.net/wiki/"},
	"marvel":            {Name: "Marvel Database", BaseURL: "https://marvel.fandom.com/wiki/"},
	"doctor who":        {Name: "TARDIS Wiki", BaseURL: "https://tardis.fandom.com/wiki/"},
	"game of thrones":   {Name: "Wiki of Westeros", BaseURL: "https://gameofthrones.fandom.com/wiki/"},
	"minecraft":         {Name: "Minecraft Wiki", BaseURL: "https://minecraft.wiki/w/"},
	"zelda":             {Name: "Zelda Wiki", BaseURL: "https://zeldawiki.wiki/wiki/"},
	"disney":            {Name: "Disney Wiki", BaseURL: "https://disney.fandom.com/wiki/"},
	"anime":             {Name: "MyAnimeList", BaseURL: "https://myanimelist.net/anime/"},
}

// ResolveSpecialized matches a free-text category name against the
// known specialized wikis. Only consulted for user-defined categories.
func ResolveSpecialized(category string) (Wiki, bool) {
	c := strings.ToLower(strings.TrimSpace(category))
	for keyword, w := range specializedWikis {
		if strings.Contains(c, keyword) {
			return w, true
		}
	}
	return Wiki{}, false
}
