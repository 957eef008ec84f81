package commands

import (
	"fmt"
	"time"

	"restoonline/internal/core/domain/model/kernel"
)

// Notification texts sent on lifecycle events. Amounts are FCFA minor units
// already, so they render as-is.

func orderCreatedTexts(number kernel.OrderNumber, total int64) (title, message string, data map[string]any) {
	return "Commande créée",
		fmt.Sprintf("Votre commande #%s a été créée. Montant: %d FCFA", number, total),
		map[string]any{"order_number": number.String(), "total": total}
}

func newOrderStaffTexts(number kernel.OrderNumber, total int64) (title, message string, data map[string]any) {
	return "Nouvelle commande",
		fmt.Sprintf("Nouvelle commande #%s. Montant: %d FCFA", number, total),
		map[string]any{"order_number": number.String(), "total": total}
}

func orderAcceptedTexts(number kernel.OrderNumber) (title, message string, data map[string]any) {
	return "Commande acceptée",
		fmt.Sprintf("Votre commande #%s a été acceptée et est en préparation", number),
		map[string]any{"order_number": number.String()}
}

func orderRefusedTexts(number kernel.OrderNumber, reason string) (title, message string, data map[string]any) {
	message = fmt.Sprintf("Votre commande #%s a été refusée", number)
	if reason != "" {
		message += ". Raison: " + reason
	}
	return "Commande refusée", message,
		map[string]any{"order_number": number.String(), "reason": reason}
}

func orderPreparingTexts(number kernel.OrderNumber) (title, message string, data map[string]any) {
	return "Commande en préparation",
		fmt.Sprintf("Votre commande #%s est en cours de préparation", number),
		map[string]any{"order_number": number.String()}
}

func orderReadyTexts(number kernel.OrderNumber) (title, message string, data map[string]any) {
	return "Commande prête",
		fmt.Sprintf("Votre commande #%s est prête! Le livreur arrive bientôt", number),
		map[string]any{"order_number": number.String()}
}

func orderCancelledTexts(number kernel.OrderNumber, reason string) (title, message string, data map[string]any) {
	return "Commande annulée",
		fmt.Sprintf("Votre commande #%s a été annulée. Raison: %s", number, reason),
		map[string]any{"order_number": number.String(), "reason": reason}
}

func orderCancelledStaffTexts(number kernel.OrderNumber, reason string) (title, message string, data map[string]any) {
	return "Commande annulée",
		fmt.Sprintf("La commande #%s a été annulée. Raison: %s", number, reason),
		map[string]any{"order_number": number.String(), "reason": reason}
}

func assignmentCreatedTexts(number kernel.OrderNumber) (title, message string, data map[string]any) {
	return "Nouvelle livraison",
		fmt.Sprintf("Vous avez une nouvelle livraison pour la commande #%s", number),
		map[string]any{"order_number": number.String()}
}

func orderAssignedTexts(number kernel.OrderNumber, deliveryPersonName string) (title, message string, data map[string]any) {
	return "Livreur assigné",
		fmt.Sprintf("Un livreur a été assigné à votre commande #%s", number),
		map[string]any{"order_number": number.String(), "delivery_person": deliveryPersonName}
}

func assignmentRefusedStaffTexts(number kernel.OrderNumber, deliveryPersonName, reason string) (title, message string, data map[string]any) {
	message = fmt.Sprintf("La livraison de la commande #%s a été refusée par %s", number, deliveryPersonName)
	if reason != "" {
		message += ". Raison: " + reason
	}
	return "Livraison refusée", message,
		map[string]any{"order_number": number.String(), "delivery_person": deliveryPersonName, "reason": reason}
}

func orderInDeliveryTexts(number kernel.OrderNumber, deliveryPersonName string) (title, message string, data map[string]any) {
	return "Commande en livraison",
		fmt.Sprintf("Votre commande #%s est en cours de livraison par %s", number, deliveryPersonName),
		map[string]any{"order_number": number.String(), "delivery_person": deliveryPersonName}
}

func orderDeliveredTexts(number kernel.OrderNumber) (title, message string, data map[string]any) {
	return "Commande livrée",
		fmt.Sprintf("Votre commande #%s a été livrée. Merci!", number),
		map[string]any{"order_number": number.String()}
}

func deliveryCompletedStaffTexts(number kernel.OrderNumber, deliveryPersonName string, duration time.Duration, hasDuration bool) (title, message string, data map[string]any) {
	message = fmt.Sprintf("Livraison complétée pour la commande #%s par %s", number, deliveryPersonName)
	if hasDuration {
		message += fmt.Sprintf(" en %s", duration.Round(time.Second))
	}
	return "Livraison complétée", message,
		map[string]any{"order_number": number.String(), "delivery_person": deliveryPersonName}
}

func paymentReceivedTexts(number kernel.OrderNumber, amount int64) (title, message string, data map[string]any) {
	return "Paiement reçu",
		fmt.Sprintf("Paiement de %d FCFA pour la commande #%s reçu", amount, number),
		map[string]any{"order_number": number.String(), "amount": amount}
}

func ratingReceivedTexts(number kernel.OrderNumber, score int) (title, message string, data map[string]any) {
	return "Vous avez reçu une note",
		fmt.Sprintf("Commande #%s: %d/5 étoiles", number, score),
		map[string]any{"order_number": number.String(), "rating": score}
}
