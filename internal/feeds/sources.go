package feeds

// DefaultRSSFeeds is the curated list of RSS sources.
// Organized by category for transparency - you see exactly what you're subscribed to.
// Weight: 1.0 = normal, >1 = more important, <1 = less important.
// Fringe and alternative outlets are subscribed deliberately: the narrative
// tracker needs to see them to detect fringe-to-mainstream crossover.
var DefaultRSSFeeds = []RSSFeedConfig{
	// Wire services & primary news (high signal, fast refresh)
	{Name: "Reuters", URL: "https://www.reutersagency.com/feed/?taxonomy=best-sectors&post_type=best", Category: "wire", RefreshMinutes: RefreshNormal, Weight: 1.5},
	{Name: "AP News", URL: "https://rsshub.app/apnews/topics/apf-topnews", Category: "wire", RefreshMinutes: RefreshNormal, Weight: 1.5},
	{Name: "BBC World", URL: "https://feeds.bbci.co.uk/news/world/rss.xml", Category: "wire", RefreshMinutes: RefreshNormal, Weight: 1.3},
	{Name: "Al Jazeera", URL: "https://www.aljazeera.com/xml/rss/all.xml", Category: "wire", RefreshMinutes: RefreshNormal, Weight: 1.2},
	{Name: "NPR News", URL: "https://feeds.npr.org/1001/rss.xml", Category: "wire", RefreshMinutes: RefreshSlow, Weight: 1.2},

	// US TV networks (secondary/corroboration)
	{Name: "CNN World", URL: "http://rss.cnn.com/rss/edition_world.rss", Category: "tv-us", RefreshMinutes: RefreshSlow, Weight: 1.0},
	{Name: "NBC News", URL: "http://feeds.nbcnews.com/feeds/topstories", Category: "tv-us", RefreshMinutes: RefreshSlow, Weight: 1.0},
	{Name: "CBS News", URL: "https://www.cbsnews.com/latest/rss/main", Category: "tv-us", RefreshMinutes: RefreshSlow, Weight: 1.0},
	{Name: "ABC News", URL: "https://feeds.abcnews.com/abcnews/topstories", Category: "tv-us", RefreshMinutes: RefreshSlow, Weight: 1.0},
	{Name: "Fox News", URL: "http://feeds.foxnews.com/foxnews/latest", Category: "tv-us", RefreshMinutes: RefreshSlow, Weight: 1.0},

	// Newspapers - US
	{Name: "NY Times World", URL: "https://rss.nytimes.com/services/xml/rss/nyt/World.xml", Category: "newspaper-us", RefreshMinutes: RefreshLazy, Weight: 1.2},
	{Name: "Washington Post", URL: "http://feeds.washingtonpost.com/rss/world", Category: "newspaper-us", RefreshMinutes: RefreshLazy, Weight: 1.2},
	{Name: "Wall St Journal", URL: "https://feeds.a.dj.com/rss/RSSWorldNews.xml", Category: "newspaper-us", RefreshMinutes: RefreshLazy, Weight: 1.2},
	{Name: "USA Today", URL: "http://rssfeeds.usatoday.com/usatoday-NewsTopStories", Category: "newspaper-us", RefreshMinutes: RefreshLazy, Weight: 0.9},

	// Newspapers - international
	{Name: "The Guardian", URL: "https://www.theguardian.com/world/rss", Category: "newspaper-intl", RefreshMinutes: RefreshLazy, Weight: 1.2},
	{Name: "Der Spiegel", URL: "https://www.spiegel.de/international/index.rss", Category: "newspaper-intl", RefreshMinutes: RefreshLazy, Weight: 1.1},
	{Name: "France 24", URL: "https://www.france24.com/en/rss", Category: "newspaper-intl", RefreshMinutes: RefreshLazy, Weight: 1.0},
	{Name: "DW News", URL: "https://rss.dw.com/rdf/rss-en-all", Category: "newspaper-intl", RefreshMinutes: RefreshLazy, Weight: 1.0},
	{Name: "South China MP", URL: "https://www.scmp.com/rss/91/feed", Category: "newspaper-intl", RefreshMinutes: RefreshLazy, Weight: 1.1},
	{Name: "Times of India", URL: "https://timesofindia.indiatimes.com/rssfeedstopstories.cms", Category: "newspaper-intl", RefreshMinutes: RefreshLazy, Weight: 1.0},

	// Regional coverage (feeds the region-tagged mainstream narratives)
	{Name: "Folha de S.Paulo", URL: "https://feeds.folha.uol.com.br/internacional/en/rss091.xml", Category: "latam", RefreshMinutes: RefreshHourly, Weight: 1.0},
	{Name: "Buenos Aires Times", URL: "https://www.batimes.com.ar/feed", Category: "latam", RefreshMinutes: RefreshHourly, Weight: 1.0},
	{Name: "Middle East Eye", URL: "https://www.middleeasteye.net/rss", Category: "mena", RefreshMinutes: RefreshLazy, Weight: 1.0},
	{Name: "Times of Israel", URL: "https://www.timesofisrael.com/feed/", Category: "mena", RefreshMinutes: RefreshLazy, Weight: 1.0},

	// Finance & markets
	{Name: "CNBC", URL: "https://search.cnbc.com/rs/search/combinedcms/view.xml?partnerId=wrss01&id=100003114", Category: "finance", RefreshMinutes: RefreshSlow, Weight: 1.1},
	{Name: "MarketWatch", URL: "http://feeds.marketwatch.com/marketwatch/topstories/", Category: "finance", RefreshMinutes: RefreshSlow, Weight: 1.0},

	// Fringe & alternative (low weight, watched for narrative crossover)
	{Name: "ZeroHedge", URL: "https://feeds.feedburner.com/zerohedge/feed", Category: "fringe", RefreshMinutes: RefreshSlow, Weight: 0.4},
	{Name: "Infowars", URL: "https://www.infowars.com/rss.xml", Category: "fringe", RefreshMinutes: RefreshHourly, Weight: 0.4},
	{Name: "NaturalNews", URL: "https://www.naturalnews.com/rss.xml", Category: "fringe", RefreshMinutes: RefreshHourly, Weight: 0.4},
	{Name: "Gateway Pundit", URL: "https://www.thegatewaypundit.com/feed/", Category: "fringe", RefreshMinutes: RefreshHourly, Weight: 0.5},
	{Name: "Breitbart", URL: "https://feeds.feedburner.com/breitbart", Category: "alternative", RefreshMinutes: RefreshSlow, Weight: 0.7},
	{Name: "Daily Caller", URL: "https://dailycaller.com/feed/", Category: "alternative", RefreshMinutes: RefreshHourly, Weight: 0.7},
}

// SourcesByCategory groups the default feeds for per-category fetch pools
func SourcesByCategory() map[string][]RSSFeedConfig {
	byCat := make(map[string][]RSSFeedConfig)
	for _, f := range DefaultRSSFeeds {
		byCat[f.Category] = append(byCat[f.Category], f)
	}
	return byCat
}
