package recommendation

// Envelope is the per-request input handed over by the transport.
//
// Data holds the decoded body, Options the query and path parameters.
// User identifies the caller; it is carried along but not inspected here.
type Envelope struct {
	Data    any
	Options map[string]any
	User    any
}

// Wire names of the recommendation fields.
const (
	fieldRecommendations   = "recommendations"
	fieldID                = "id"
	fieldTitle             = "title"
	fieldURL               = "url"
	fieldOneClickSubscribe = "one_click_subscribe"
	fieldReason            = "reason"
	fieldExcerpt           = "excerpt"
	fieldFeaturedImage     = "featured_image"
	fieldFavicon           = "favicon"
)
