package notifications

import (
	"fmt"
	"regexp"
	"strings"
)

var nonDigits = regexp.MustCompile(`\D`)

// NormalizePhone turns a local or international number into +<country><number>
func NormalizePhone(phone, countryCode string) string {
	if countryCode == "" {
		countryCode = "58"
	}
	clean := nonDigits.ReplaceAllString(phone, "")

	switch {
	case clean == "":
		return ""
	case strings.HasPrefix(clean, countryCode):
		return "+" + clean
	case strings.HasPrefix(clean, "0"):
		return "+" + countryCode + clean[1:]
	default:
		return "+" + countryCode + clean
	}
}

// Message is a rendered WhatsApp text addressed to one phone number
type Message struct {
	NotificationID string
	Kind           Kind
	Phone          string
	Text           string
}

// Renderer builds the WhatsApp text for each notification kind
type Renderer struct {
	countryCode    string
	organizerPhone string
}

func NewRenderer(countryCode, organizerPhone string) *Renderer {
	return &Renderer{countryCode: countryCode, organizerPhone: organizerPhone}
}

func (r *Renderer) Render(n *Notification) (*Message, error) {
	phone := n.RecipientPhone
	if phone == "" && n.Kind.ToOrganizer() {
		phone = r.organizerPhone
	}
	phone = NormalizePhone(phone, r.countryCode)
	if phone == "" {
		return nil, fmt.Errorf("notification %s has no recipient phone", n.ID)
	}

	text, err := r.text(n)
	if err != nil {
		return nil, err
	}
	return &Message{
		NotificationID: n.ID.String(),
		Kind:           n.Kind,
		Phone:          phone,
		Text:           text,
	}, nil
}

func (r *Renderer) text(n *Notification) (string, error) {
	p := n.Payload
	var b strings.Builder

	switch n.Kind {
	case KindReservationCreated:
		fmt.Fprintf(&b, "*NUEVA RESERVA - %s*\n\n", p.EventName)
		fmt.Fprintf(&b, "*Cliente:* %s\n", p.CustomerName)
		if p.NationalID != "" {
			fmt.Fprintf(&b, "*Cédula:* %s\n", p.NationalID)
		}
		fmt.Fprintf(&b, "*Teléfono:* %s\n\n", p.Phone)
		fmt.Fprintf(&b, "- Asiento: #%d\n- %s\n\n", p.SeatNumber, p.SessionName)
		b.WriteString("*Estado:* Reserva por confirmar")

	case KindReservationConfirmed:
		fmt.Fprintf(&b, "*CONFIRMACIÓN - %s*\n\n", p.EventName)
		fmt.Fprintf(&b, "¡Hola %s!\n\n", p.CustomerName)
		b.WriteString("Tu reservación ha sido procesada con éxito.\n\n")
		fmt.Fprintf(&b, "- Asiento: #%d\n- %s\n\n", p.SeatNumber, p.SessionName)
		b.WriteString("*Estado:* CONFIRMADO")
		r.footer(&b, p)

	case KindReservationCancelled:
		fmt.Fprintf(&b, "*CANCELACIÓN - %s*\n\n", p.EventName)
		fmt.Fprintf(&b, "Hola %s,\n\n", p.CustomerName)
		b.WriteString("Lamentamos informarte que tu reservación ha sido cancelada.\n\n")
		fmt.Fprintf(&b, "- Asiento: #%d\n- %s\n\n", p.SeatNumber, p.SessionName)
		b.WriteString("*Estado:* CANCELADA")
		r.footer(&b, p)

	case KindSeatReopened:
		fmt.Fprintf(&b, "*ASIENTO LIBERADO - %s*\n\n", p.EventName)
		fmt.Fprintf(&b, "Hola %s,\n\n", p.CustomerName)
		fmt.Fprintf(&b, "El asiento #%d de %s fue liberado y ya no está a tu nombre.", p.SeatNumber, p.SessionName)
		r.footer(&b, p)

	case KindBidPlaced:
		fmt.Fprintf(&b, "*NUEVA PUJA - %s*\n\n", p.EventName)
		fmt.Fprintf(&b, "*Participante:* %s\n", p.CustomerName)
		fmt.Fprintf(&b, "*Teléfono:* %s\n", p.Phone)
		fmt.Fprintf(&b, "*Monto:* $%.2f\n", p.Amount)
		fmt.Fprintf(&b, "- %s", p.SessionName)

	case KindVIPAssigned:
		fmt.Fprintf(&b, "*¡FELICIDADES! - %s*\n\n", p.EventName)
		fmt.Fprintf(&b, "¡Hola %s!\n\n", p.CustomerName)
		fmt.Fprintf(&b, "*¡HAS GANADO EL ASIENTO %d!*\n\n", p.SeatNumber)
		fmt.Fprintf(&b, "- Asiento: #%d\n- %s\n- Monto ganador: $%.2f\n\n", p.SeatNumber, p.SessionName, p.Amount)
		b.WriteString("*Estado:* ASIENTO ASIGNADO")
		r.footer(&b, p)

	default:
		return "", fmt.Errorf("unknown notification kind %q", n.Kind)
	}

	return b.String(), nil
}

func (r *Renderer) footer(b *strings.Builder, p Payload) {
	if !p.EventDate.IsZero() {
		fmt.Fprintf(b, "\n*Fecha del evento:* %s", p.EventDate.Format("02/01/2006"))
	}
	if p.Room != "" {
		fmt.Fprintf(b, "\n\n*%s*", p.Room)
	}
}
