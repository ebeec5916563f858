// Package extract turns a fetched website into the structured content the
// generation prompts are built from.
package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/goscha01/SiteForge/internal/catalog"
)

// Collection caps keep prompt size bounded regardless of how large the
// source page is.
const (
	maxHeadings     = 12
	maxParagraphs   = 15
	maxNavItems     = 8
	maxCTATexts     = 6
	maxTestimonials = 4
	maxFAQItems     = 10
	maxParagraphLen = 400
)

// ContactInfo holds whatever contact details the source page exposes.
type ContactInfo struct {
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// SiteContent is the structured extraction result. Missing fields default to
// empty values; collections are capped.
type SiteContent struct {
	URL          string               `json:"url"`
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	BrandName    string               `json:"brandName"`
	Headings     []string             `json:"headings"`
	Paragraphs   []string             `json:"paragraphs"`
	NavItems     []string             `json:"navItems"`
	CTATexts     []string             `json:"ctaTexts"`
	Testimonials []catalog.Testimonial `json:"testimonials,omitempty"`
	FAQItems     []catalog.FAQItem    `json:"faqItems,omitempty"`
	Contact      ContactInfo          `json:"contact"`
}

// Extract parses the page HTML into SiteContent. It never fails on missing
// content, only on unparseable input.
func Extract(pageURL, htmlContent string) (*SiteContent, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, &ExtractionError{Message: "failed to parse HTML", Cause: err}
	}

	content := &SiteContent{URL: pageURL}

	content.Title = cleanText(doc.Find("title").First().Text())
	if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && content.Title == "" {
		content.Title = cleanText(og)
	}

	if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		content.Description = cleanText(desc)
	} else if og, ok := doc.Find(`meta[property="og:description"]`).Attr("content"); ok {
		content.Description = cleanText(og)
	}

	content.BrandName = extractBrandName(doc, content.Title, pageURL)
	content.Headings = extractTexts(doc, "h1, h2, h3", maxHeadings, 0)
	content.Paragraphs = extractParagraphs(doc)
	content.NavItems = extractTexts(doc, "nav a, header a", maxNavItems, 40)
	content.CTATexts = extractCTAs(doc)
	content.Testimonials = extractTestimonials(doc)
	content.FAQItems = extractFAQ(doc)
	content.Contact = extractContact(doc)

	return content, nil
}

// extractBrandName prefers og:site_name, then the title up to a separator,
// then the host name.
func extractBrandName(doc *goquery.Document, title, pageURL string) string {
	if name, ok := doc.Find(`meta[property="og:site_name"]`).Attr("content"); ok {
		if cleaned := cleanText(name); cleaned != "" {
			return cleaned
		}
	}

	if title != "" {
		for _, sep := range []string{" | ", " – ", " — ", " - "} {
			if idx := strings.Index(title, sep); idx > 0 {
				return cleanText(title[:idx])
			}
		}
		return title
	}

	if u, err := url.Parse(pageURL); err == nil && u.Host != "" {
		host := strings.TrimPrefix(u.Host, "www.")
		if idx := strings.Index(host, "."); idx > 0 {
			host = host[:idx]
		}
		return host
	}
	return ""
}

func extractTexts(doc *goquery.Document, selector string, limit, maxLen int) []string {
	seen := make(map[string]bool)
	var out []string
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		if len(out) >= limit {
			return
		}
		text := cleanText(s.Text())
		if text == "" || seen[text] {
			return
		}
		if maxLen > 0 && len(text) > maxLen {
			return
		}
		seen[text] = true
		out = append(out, text)
	})
	return out
}

func extractParagraphs(doc *goquery.Document) []string {
	var out []string
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		if len(out) >= maxParagraphs {
			return
		}
		text := cleanText(s.Text())
		// Skip fragments and boilerplate-length strings
		if len(text) < 40 {
			return
		}
		if len(text) > maxParagraphLen {
			text = text[:maxParagraphLen]
		}
		out = append(out, text)
	})
	return out
}

func extractCTAs(doc *goquery.Document) []string {
	seen := make(map[string]bool)
	var out []string
	doc.Find(`a[class*="btn"], a[class*="button"], a[class*="cta"], button`).Each(func(_ int, s *goquery.Selection) {
		if len(out) >= maxCTATexts {
			return
		}
		text := cleanText(s.Text())
		if text == "" || len(text) > 40 || seen[text] {
			return
		}
		seen[text] = true
		out = append(out, text)
	})
	return out
}

func extractTestimonials(doc *goquery.Document) []catalog.Testimonial {
	var out []catalog.Testimonial
	doc.Find(`blockquote, [class*="testimonial"]`).Each(func(_ int, s *goquery.Selection) {
		if len(out) >= maxTestimonials {
			return
		}
		quote := cleanText(s.Find("p").First().Text())
		if quote == "" {
			quote = cleanText(s.Text())
		}
		if len(quote) < 20 || len(quote) > maxParagraphLen {
			return
		}
		author := cleanText(s.Find("cite, figcaption, [class*='author']").First().Text())
		out = append(out, catalog.Testimonial{Quote: quote, Author: author})
	})
	return out
}

func extractFAQ(doc *goquery.Document) []catalog.FAQItem {
	var out []catalog.FAQItem
	doc.Find("details").Each(func(_ int, s *goquery.Selection) {
		if len(out) >= maxFAQItems {
			return
		}
		question := cleanText(s.Find("summary").First().Text())
		if question == "" {
			return
		}
		answer := cleanText(strings.Replace(s.Text(), question, "", 1))
		out = append(out, catalog.FAQItem{Question: question, Answer: answer})
	})
	return out
}

func extractContact(doc *goquery.Document) ContactInfo {
	var info ContactInfo
	doc.Find(`a[href^="mailto:"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if href, ok := s.Attr("href"); ok {
			info.Email = strings.TrimPrefix(href, "mailto:")
		}
		return false
	})
	doc.Find(`a[href^="tel:"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if href, ok := s.Attr("href"); ok {
			info.Phone = strings.TrimPrefix(href, "tel:")
		}
		return false
	})
	if addr := cleanText(doc.Find("address").First().Text()); addr != "" {
		info.Address = addr
	}
	return info
}

// cleanText collapses whitespace runs into single spaces and trims.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
