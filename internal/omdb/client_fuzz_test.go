package omdb

import "testing"

func FuzzConvertToResult(f *testing.F) {
	f.Add("Batman", "1989", "Internet Movie Database", "7.5/10", 2)

	f.Fuzz(func(t *testing.T, title, year, source, value string, n int) {
		if n < 0 {
			n = -n
		}
		n %= 16
		resp := apiResponse{Response: "True", Title: title, Year: year}
		for i := 0; i < n; i++ {
			resp.Ratings = append(resp.Ratings, ratingPayload{Source: source, Value: value})
		}

		result := convertToResult(resp)
		if result == nil {
			t.Fatalf("convertToResult returned nil result")
		}
		if result.Movie.Title != title || result.Movie.Year != year {
			t.Fatalf("scalar fields not copied: %+v", result.Movie)
		}
		if len(result.Movie.Ratings) != n {
			t.Fatalf("ratings = %d, want %d", len(result.Movie.Ratings), n)
		}
	})
}
