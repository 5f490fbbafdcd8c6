package openrouter

type chatRequest struct {
	Model      string    `json:"model"`
	Modalities []string  `json:"modalities"`
	Messages   []message `json:"messages"`
}

type message struct {
	Role    string         `json:"role"`
	Content []contentBlock `json:"content"`
}

// contentBlock is either a text block or an image_url block
type contentBlock struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageRef `json:"image_url,omitempty"`
}

type imageRef struct {
	URL string `json:"url"`
}

func textBlock(text string) contentBlock {
	return contentBlock{Type: "text", Text: text}
}

func imageBlock(url string) contentBlock {
	return contentBlock{Type: "image_url", ImageURL: &imageRef{URL: url}}
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
			Images  []struct {
				Type     string   `json:"type"`
				ImageURL imageRef `json:"image_url"`
			} `json:"images"`
		} `json:"message"`
	} `json:"choices"`
}

// firstImageURL returns choices[0].message.images[0].image_url.url when present
func (r *chatResponse) firstImageURL() (string, bool) {
	if len(r.Choices) == 0 || len(r.Choices[0].Message.Images) == 0 {
		return "", false
	}
	url := r.Choices[0].Message.Images[0].ImageURL.URL
	return url, url != ""
}
