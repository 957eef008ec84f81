// Package courier contains the DeliveryPerson aggregate: the person who
// accepts assignments and delivers orders, together with the denormalized
// performance fields (delivery counter and rating aggregate) that the
// application recomputes after each completed delivery or rating.
package courier
