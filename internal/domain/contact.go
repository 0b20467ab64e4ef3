package domain

import (
	"fmt"
	"strings"
)

const (
	whatsAppBaseURL    = "https://wa.me/"
	brazilCountryCode  = "55"
	contactMessageTmpl = "Olá! Vi o imóvel *%s* anunciado no CorrenteLar e tenho interesse. Poderia me dar mais informações?"
)

// ContactLink 根据电话与房源标题构造 WhatsApp 深链接。
//
// 电话只保留数字；不以 "55" 开头时补上巴西国家码。注意已经带其他国家码、
// 但恰好以 55 开头的号码也不会再补，这是既有行为。
func ContactLink(phone, title string) string {
	digits := NormalizePhone(phone)
	if !strings.HasPrefix(digits, brazilCountryCode) {
		digits = brazilCountryCode + digits
	}
	msg := fmt.Sprintf(contactMessageTmpl, title)
	return whatsAppBaseURL + digits + "?text=" + quote(msg)
}

// NormalizePhone 去掉电话中所有非数字字符。
func NormalizePhone(phone string) string {
	var b strings.Builder
	b.Grow(len(phone))
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// quote 对字符串做百分号编码：仅保留 A-Z a-z 0-9 _ . - ~ 和 /，
// 其余按 UTF-8 字节编码为 %XX (大写)。
// net/url 的 QueryEscape/PathEscape 保留集合不同 (空格变 +，或保留 $&+=:@)，所以这里单独实现。
func quote(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s) * 3)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0F])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	case c == '_', c == '.', c == '-', c == '~', c == '/':
		return true
	}
	return false
}
