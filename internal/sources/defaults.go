package sources

import "github.com/arnoldongithub/atlantic-anvil/internal/domain"

type feed = domain.FeedDefinition

// Defaults is the compiled-in publisher list used when configuration has none.
func Defaults() []domain.SourceDefinition {
	return []domain.SourceDefinition{
		// Networks
		{Key: "fox-news", Name: "Fox News", DisplayName: "Fox News", Feeds: []feed{
			{URL: "https://moxie.foxnews.com/google-publisher/politics.xml", Category: "politics"},
			{URL: "https://moxie.foxnews.com/google-publisher/latest.xml", Category: "latest"},
			{URL: "https://feeds.foxnews.com/foxnews/opinion", Category: "opinion"},
			{URL: "https://feeds.foxnews.com/foxnews/national", Category: "national"},
		}},
		{Key: "fox-business", Name: "Fox Business", DisplayName: "Fox Business", Feeds: []feed{
			{URL: "https://feeds.foxbusiness.com/foxbusiness/latest", Category: "business"},
			{URL: "https://feeds.foxbusiness.com/foxbusiness/politics", Category: "politics"},
			{URL: "https://feeds.foxbusiness.com/foxbusiness/markets", Category: "markets"},
		}},
		{Key: "oan", Name: "One America News", DisplayName: "OAN", Feeds: []feed{
			{URL: "https://www.oann.com/feed/", Category: "general"},
		}},
		{Key: "newsmax", Name: "Newsmax", DisplayName: "Newsmax", Feeds: []feed{
			{URL: "https://www.newsmax.com/rss/Newsfront/1/", Category: "newsfront"},
			{URL: "https://www.newsmax.com/rss/Politics/1/", Category: "politics"},
			{URL: "https://www.newsmax.com/rss/Finance/1/", Category: "finance"},
		}},

		// Digital media
		{Key: "daily-wire", Name: "The Daily Wire", DisplayName: "Daily Wire", Feeds: []feed{
			{URL: "https://www.dailywire.com/feeds/rss.xml", Category: "general"},
		}},
		{Key: "breitbart", Name: "Breitbart", DisplayName: "Breitbart News", Feeds: []feed{
			{URL: "https://feeds.feedburner.com/breitbart", Category: "general"},
		}},
		{Key: "daily-caller", Name: "The Daily Caller", DisplayName: "Daily Caller", Feeds: []feed{
			{URL: "https://dailycaller.com/feed/", Category: "general"},
			{URL: "https://dailycaller.com/section/politics/feed/", Category: "politics"},
		}},
		{Key: "the-blaze", Name: "The Blaze", DisplayName: "The Blaze", Feeds: []feed{
			{URL: "https://www.theblaze.com/feeds/feed.rss", Category: "general"},
		}},

		// Publications
		{Key: "national-review", Name: "National Review", DisplayName: "National Review", Feeds: []feed{
			{URL: "https://www.nationalreview.com/feed/", Category: "general"},
			{URL: "https://www.nationalreview.com/corner/feed/", Category: "corner"},
		}},
		{Key: "american-conservative", Name: "The American Conservative", DisplayName: "The American Conservative", Feeds: []feed{
			{URL: "https://www.theamericanconservative.com/feed/", Category: "general"},
		}},
		{Key: "wall-street-journal", Name: "Wall Street Journal", DisplayName: "WSJ Opinion", Feeds: []feed{
			{URL: "https://feeds.a.dj.com/rss/RSSOpinion.xml", Category: "opinion"},
		}},
		{Key: "ny-post", Name: "New York Post", DisplayName: "NY Post", Feeds: []feed{
			{URL: "https://nypost.com/feed/", Category: "general"},
			{URL: "https://nypost.com/politics/feed/", Category: "politics"},
		}},

		// Commentary
		{Key: "townhall", Name: "Townhall", DisplayName: "Townhall", Feeds: []feed{
			{URL: "https://townhall.com/feed/", Category: "general"},
			{URL: "https://townhall.com/columnists/feed/", Category: "columnists"},
		}},
		{Key: "redstate", Name: "RedState", DisplayName: "RedState", Feeds: []feed{
			{URL: "https://redstate.com/feed/", Category: "general"},
		}},
		{Key: "federalist", Name: "The Federalist", DisplayName: "The Federalist", Feeds: []feed{
			{URL: "https://thefederalist.com/feed/", Category: "general"},
		}},
		{Key: "american-thinker", Name: "American Thinker", DisplayName: "American Thinker", Feeds: []feed{
			{URL: "https://www.americanthinker.com/rss.xml", Category: "general"},
		}},
		{Key: "pj-media", Name: "PJ Media", DisplayName: "PJ Media", Feeds: []feed{
			{URL: "https://pjmedia.com/feed/", Category: "general"},
		}},

		// Regional
		{Key: "washington-examiner", Name: "Washington Examiner", DisplayName: "Washington Examiner", Feeds: []feed{
			{URL: "https://www.washingtonexaminer.com/feed", Category: "general"},
		}},
		{Key: "washington-times", Name: "Washington Times", DisplayName: "Washington Times", Feeds: []feed{
			{URL: "https://www.washingtontimes.com/rss/headlines/", Category: "headlines"},
		}},
		{Key: "washington-free-beacon", Name: "Washington Free Beacon", DisplayName: "Free Beacon", Feeds: []feed{
			{URL: "https://freebeacon.com/feed/", Category: "general"},
		}},

		// International
		{Key: "epoch-times", Name: "The Epoch Times", DisplayName: "Epoch Times", Feeds: []feed{
			{URL: "https://www.theepochtimes.com/c-us-politics/feed", Category: "politics"},
		}},

		// Think tanks
		{Key: "daily-signal", Name: "The Daily Signal", DisplayName: "Daily Signal", Feeds: []feed{
			{URL: "https://www.dailysignal.com/feed/", Category: "general"},
		}},
		{Key: "heritage", Name: "Heritage Foundation", DisplayName: "Heritage", Feeds: []feed{
			{URL: "https://www.heritage.org/rss.xml", Category: "research"},
		}},
	}
}
