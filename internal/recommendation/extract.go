package recommendation

import (
	"fmt"

	"github.com/MrSnakeDoc/recommendations/internal/domain"
)

// ExtractID returns options.id. It must be a non-empty string or a
// non-zero number.
func ExtractID(env Envelope) (string, error) {
	if env.Options == nil {
		return "", errRequired(fieldID)
	}

	switch id := env.Options[fieldID].(type) {
	case nil:
		return "", errRequired(fieldID)
	case string:
		if id == "" {
			return "", errRequired(fieldID)
		}
		return id, nil
	case int:
		return numericID(id != 0, id)
	case int64:
		return numericID(id != 0, id)
	case float64:
		return numericID(id != 0, id)
	case bool:
		if !id {
			return "", errRequired(fieldID)
		}
		return "", errNotString(fieldID)
	default:
		return "", errNotString(fieldID)
	}
}

func numericID(truthy bool, id any) (string, error) {
	if !truthy {
		return "", errRequired(fieldID)
	}
	return fmt.Sprint(id), nil
}

// firstRecommendation returns data.recommendations[0]. Any further
// elements are ignored.
func firstRecommendation(env Envelope) (any, error) {
	data, ok := env.Data.(map[string]any)
	if !ok || data == nil {
		return nil, errRequired(fieldRecommendations)
	}
	list, ok := data[fieldRecommendations].([]any)
	if !ok || len(list) == 0 || isFalsy(list[0]) {
		return nil, errRequired(fieldRecommendations)
	}
	return list[0], nil
}

// isFalsy matches the values a loosely-typed client uses for "nothing".
func isFalsy(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	case int:
		return t == 0
	case int64:
		return t == 0
	case float64:
		return t == 0
	default:
		return false
	}
}

// ExtractRecommendation builds a complete creation payload. url is
// required; every other field falls back to its default.
func ExtractRecommendation(env Envelope) (domain.RecommendationInput, error) {
	rec, err := firstRecommendation(env)
	if err != nil {
		return domain.RecommendationInput{}, err
	}

	var in domain.RecommendationInput

	if in.Title, _, err = ValidateString(rec, fieldTitle, Optional()); err != nil {
		return domain.RecommendationInput{}, err
	}
	if in.URL, _, err = ValidateURL(rec, fieldURL); err != nil {
		return domain.RecommendationInput{}, err
	}
	if in.OneClickSubscribe, _, err = ValidateBoolean(rec, fieldOneClickSubscribe, Optional()); err != nil {
		return domain.RecommendationInput{}, err
	}
	if in.Reason, err = optionalString(rec, fieldReason); err != nil {
		return domain.RecommendationInput{}, err
	}
	if in.Excerpt, err = optionalString(rec, fieldExcerpt); err != nil {
		return domain.RecommendationInput{}, err
	}
	if in.FeaturedImage, err = optionalString(rec, fieldFeaturedImage); err != nil {
		return domain.RecommendationInput{}, err
	}
	if in.Favicon, err = optionalString(rec, fieldFavicon); err != nil {
		return domain.RecommendationInput{}, err
	}

	return in, nil
}

// optionalString maps an absent or null field to nil.
func optionalString(rec any, key string) (*string, error) {
	s, present, err := ValidateString(rec, key, Optional())
	if err != nil || !present {
		return nil, err
	}
	return &s, nil
}

// ExtractRecommendationEdit builds a sparse update: omitted fields stay
// unset, explicit nulls on nullable fields become "clear".
func ExtractRecommendationEdit(env Envelope) (domain.RecommendationEdit, error) {
	rec, err := firstRecommendation(env)
	if err != nil {
		return domain.RecommendationEdit{}, err
	}

	var edit domain.RecommendationEdit

	title, ok, err := ValidateString(rec, fieldTitle, Optional())
	if err != nil {
		return domain.RecommendationEdit{}, err
	}
	if ok {
		edit.Title = domain.Set(title)
	}

	u, ok, err := ValidateURL(rec, fieldURL, Optional())
	if err != nil {
		return domain.RecommendationEdit{}, err
	}
	if ok {
		edit.URL = domain.Set(u)
	}

	subscribe, ok, err := ValidateBoolean(rec, fieldOneClickSubscribe, Optional())
	if err != nil {
		return domain.RecommendationEdit{}, err
	}
	if ok {
		edit.OneClickSubscribe = domain.Set(subscribe)
	}

	if edit.Reason, err = ValidateNullableString(rec, fieldReason); err != nil {
		return domain.RecommendationEdit{}, err
	}
	if edit.Excerpt, err = ValidateNullableString(rec, fieldExcerpt); err != nil {
		return domain.RecommendationEdit{}, err
	}
	if edit.FeaturedImage, err = ValidateNullableString(rec, fieldFeaturedImage); err != nil {
		return domain.RecommendationEdit{}, err
	}
	if edit.Favicon, err = ValidateNullableString(rec, fieldFavicon); err != nil {
		return domain.RecommendationEdit{}, err
	}

	return edit, nil
}
